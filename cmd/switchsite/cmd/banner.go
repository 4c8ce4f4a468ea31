package cmd

import (
	"fmt"
)

const banner = `
   _____         _ _       _      _____
  / ____|       (_) |     | |    / ____|
 | (___ __      ___| |_ ___| |__ | |  __  __ _ _ __ ___   ___  ___
  \___ \\ \ /\ / / | __/ __| '_ \| | |_ |/ _` + "`" + ` | '_ ` + "`" + ` _ \ / _ \/ __|
  ____) |\ V  V /| | || (__| | | | |__| | (_| | | | | | |  __/\__ \
 |_____/  \_/\_/ |_|\__\___|_| |_|\_____|\__,_|_| |_| |_|\___||___/

`

func printBanner() {
	fmt.Printf("\x1b[34m%s\x1b[0m", banner)
	fmt.Printf("\x1b[32m  Site Backend - Version %s\x1b[0m\n\n", Version)
}
