package media

// ImageAsset is a raw upload: the file bytes plus the MIME type and byte length
// the client declared for it. It lives only for the duration of one request.
type ImageAsset struct {
	Bytes []byte
	Mime  string
	Size  int64
}

func (a ImageAsset) None() bool {
	return len(a.Bytes) == 0
}

// ByteLen prefers the declared size; falls back to the actual buffer length
// when the transport did not declare one.
func (a ImageAsset) ByteLen() int64 {
	if a.Size > 0 {
		return a.Size
	}

	return int64(len(a.Bytes))
}

// NormalizedImage is the canonical form every accepted upload is converted to
// before it goes upstream: PNG encoded, dimensions bounded, aspect ratio kept.
type NormalizedImage struct {
	Bytes  []byte
	Width  int
	Height int
}

const DefaultLimit = 20

// Pagination carries the limit/offset passed through to the marketplace
// listing API verbatim.
type Pagination struct {
	Limit  int
	Offset int
}

func (p Pagination) Normalized() Pagination {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}

	if p.Offset < 0 {
		p.Offset = 0
	}

	return p
}
