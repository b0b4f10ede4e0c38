package service

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"onehop-proxy/internal/model"
)

// bodyMethods are the only methods whose inbound body is forwarded.
var bodyMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// HasBody reports whether the proxy forwards a body for the given method.
// Bodies on other methods are never read.
func HasBody(method string) bool {
	return bodyMethods[method]
}

// translatePayload converts the inbound body into exactly one outbound
// payload variant based on method and content type.
func translatePayload(pr *model.ProxyRequest) model.Payload {
	if !bodyMethods[pr.Method] {
		return model.Payload{Kind: model.PayloadEmpty}
	}

	switch {
	case strings.Contains(pr.ContentType, "multipart/form-data"):
		return multipartPayload(pr)
	case strings.Contains(pr.ContentType, "application/x-www-form-urlencoded"):
		// Re-serialized from the parsed field mapping, not a byte-for-byte
		// passthrough of the inbound body.
		return model.Payload{Kind: model.PayloadURLEncoded, Encoded: pr.Form.Encode()}
	default:
		return model.Payload{Kind: model.PayloadRaw, Raw: pr.RawBody}
	}
}

// multipartPayload builds the outbound field set: every parsed plain field
// verbatim plus every usable file upload. A field holding multiple files is
// flattened to "<field>[<index>]" parts, indexed by original position, so a
// skipped file leaves a gap rather than renumbering its siblings. A
// single-file field keeps its bare name. Files whose upload status is not OK
// are omitted silently.
func multipartPayload(pr *model.ProxyRequest) model.Payload {
	p := model.Payload{Kind: model.PayloadMultipart}

	fieldNames := make([]string, 0, len(pr.Form))
	for name := range pr.Form {
		fieldNames = append(fieldNames, name)
	}
	sort.Strings(fieldNames)
	for _, name := range fieldNames {
		for _, value := range pr.Form[name] {
			p.Plain = append(p.Plain, model.PlainField{Name: name, Value: value})
		}
	}

	uploadNames := make([]string, 0, len(pr.Uploads))
	for name := range pr.Uploads {
		uploadNames = append(uploadNames, name)
	}
	sort.Strings(uploadNames)
	for _, name := range uploadNames {
		files := pr.Uploads[name]
		if len(files) == 1 {
			if f := files[0]; f.Status == model.UploadOK {
				p.Files = append(p.Files, fileField(name, f))
			}
			continue
		}
		for i, f := range files {
			if f.Status != model.UploadOK {
				continue
			}
			p.Files = append(p.Files, fileField(fmt.Sprintf("%s[%d]", name, i), f))
		}
	}

	return p
}

func fileField(name string, f model.FileUpload) model.FileField {
	return model.FileField{
		Name:        name,
		Filename:    f.Filename,
		ContentType: f.ContentType,
		Size:        f.Size,
		Open:        f.Open,
	}
}
