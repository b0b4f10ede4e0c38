package model

import "io"

// PayloadKind discriminates the outbound body representation.
type PayloadKind int

const (
	// PayloadEmpty carries no body at all.
	PayloadEmpty PayloadKind = iota
	// PayloadRaw carries the inbound body bytes untouched.
	PayloadRaw
	// PayloadURLEncoded carries a re-serialized key=value&... string.
	PayloadURLEncoded
	// PayloadMultipart carries plain fields and file parts; the transport
	// generates the boundary and Content-Type.
	PayloadMultipart
)

// Payload is the tagged outbound body variant. Exactly the fields implied by
// Kind are populated.
type Payload struct {
	Kind    PayloadKind
	Raw     []byte
	Encoded string
	Plain   []PlainField
	Files   []FileField
}

// PlainField is a text multipart part.
type PlainField struct {
	Name  string
	Value string
}

// FileField is a file multipart part. Name already carries the [index]
// suffix when the field held multiple files.
type FileField struct {
	Name        string
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// UploadOK is the status of a successfully received file upload.
const UploadOK = ""

// FileUpload is one inbound uploaded file as handed over by the server front
// end. Status is UploadOK for usable files; anything else names the per-field
// upload failure and excludes the file from forwarding.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Status      string
	Open        func() (io.ReadCloser, error)
}
