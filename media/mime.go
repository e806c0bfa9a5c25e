package media

const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimeWebP = "image/webp"
)

var allowedMimes = map[string]struct{}{
	MimeJPEG: {},
	MimePNG:  {},
	MimeWebP: {},
}

// MimeAllowed reports whether the declared content type is one the gateway
// accepts for upload.
func MimeAllowed(mime string) bool {
	_, ok := allowedMimes[mime]
	return ok
}
