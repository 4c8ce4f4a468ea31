package store

import "path/filepath"

// Collection file names, matching the original site deployment.
const (
	gamesFile        = "games-data.json"
	postsFile        = "blog-posts.json"
	careersFile      = "careers-data.json"
	staffFile        = "staff-data.json"
	contactsFile     = "contacts-data.json"
	applicationsFile = "applications-data.json"
	accountsFile     = "staff-accounts.json"
)

// Stores bundles every collection under one data directory.
type Stores struct {
	Games        *Collection[Game]
	Posts        *Collection[Post]
	Careers      *Collection[Career]
	Staff        *Collection[StaffMember]
	Contacts     *Collection[Contact]
	Applications *Collection[Application]
	Accounts     *Collection[StaffAccount]
}

// Open returns the collections rooted at dir. Files are created lazily
// on first write; nothing is touched here.
func Open(dir string) *Stores {
	return &Stores{
		Games:        NewCollection[Game](filepath.Join(dir, gamesFile), "games"),
		Posts:        NewCollection[Post](filepath.Join(dir, postsFile), "posts"),
		Careers:      NewCollection[Career](filepath.Join(dir, careersFile), "careers"),
		Staff:        NewCollection[StaffMember](filepath.Join(dir, staffFile), "staff"),
		Contacts:     NewCollection[Contact](filepath.Join(dir, contactsFile), "contacts"),
		Applications: NewCollection[Application](filepath.Join(dir, applicationsFile), "applications"),
		Accounts:     NewCollection[StaffAccount](filepath.Join(dir, accountsFile), "accounts"),
	}
}
