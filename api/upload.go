package api

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/switchgames/site/internal/util"
)

const (
	// maxUploadSize caps image uploads at 5 MiB.
	maxUploadSize = 5 << 20
	// multipartOverhead leaves room for the multipart envelope so a file
	// exactly at the cap is not rejected by MaxBytesReader.
	multipartOverhead = 64 << 10
	// thumbnailWidth bounds the generated preview image.
	thumbnailWidth = 480
)

// Upload handles POST /api/admin/upload. The file arrives as the
// "image" multipart field and is stored under a random name; a preview
// thumbnail is generated best-effort.
func (a *API) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(maxUploadSize + multipartOverhead); err != nil {
		writeError(w, http.StatusBadRequest, "image exceeds the 5 MB limit")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image field")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		writeError(w, http.StatusBadRequest, "image exceeds the 5 MB limit")
		return
	}

	// Sniff the content rather than trusting the declared type alone.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		writeInternalError(w, "upload failed", err)
		return
	}
	sniffed := http.DetectContentType(head[:n])
	declared := header.Header.Get("Content-Type")
	if !strings.HasPrefix(sniffed, "image/") || !strings.HasPrefix(declared, "image/") {
		writeError(w, http.StatusBadRequest, "only image uploads are allowed")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeInternalError(w, "upload failed", err)
		return
	}

	name := util.RandomHex(8) + sanitizeExt(header.Filename)
	if err := os.MkdirAll(a.uploadsDir, 0o755); err != nil {
		writeInternalError(w, "upload failed", err)
		return
	}
	path := filepath.Join(a.uploadsDir, name)
	dst, err := os.Create(path)
	if err != nil {
		writeInternalError(w, "upload failed", err)
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(path)
		writeInternalError(w, "upload failed", err)
		return
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		writeInternalError(w, "upload failed", err)
		return
	}

	resp := UploadResponse{URL: "/uploads/" + name}
	if thumb, err := a.writeThumbnail(path, name); err != nil {
		slog.Warn("thumbnail generation failed", "file", name, "error", err)
	} else {
		resp.ThumbnailURL = "/uploads/" + thumb
	}

	session := sessionFromContext(r.Context())
	a.audit.logEvent(AuditImageUploaded, r, session.AccountID,
		slog.String("file", name),
		slog.Int64("size", header.Size))
	writeJSON(w, http.StatusOK, resp)
}

// writeThumbnail renders a downscaled copy next to the original. SVGs
// and other formats imaging cannot decode just skip the thumbnail.
func (a *API) writeThumbnail(path, name string) (string, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", err
	}
	thumb := imaging.Fit(img, thumbnailWidth, thumbnailWidth, imaging.Lanczos)

	ext := filepath.Ext(name)
	thumbName := strings.TrimSuffix(name, ext) + "_thumb" + ext
	if err := imaging.Save(thumb, filepath.Join(a.uploadsDir, thumbName)); err != nil {
		return "", err
	}
	return thumbName, nil
}

// sanitizeExt keeps a short, lowercase alphanumeric extension from the
// client filename and discards anything else.
func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) < 2 || len(ext) > 8 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
