package service

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"onehop-proxy/internal/model"
)

func stringOpener(s string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(s)), nil
	}
}

func TestTranslatePayload_NonBodyMethodsAlwaysEmpty(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodOptions, http.MethodHead} {
		t.Run(method, func(t *testing.T) {
			pr := &model.ProxyRequest{
				Method:      method,
				ContentType: "application/octet-stream",
				RawBody:     []byte("should never be forwarded"),
			}
			p := translatePayload(pr)
			if p.Kind != model.PayloadEmpty {
				t.Errorf("kind = %v, want PayloadEmpty", p.Kind)
			}
		})
	}
}

func TestTranslatePayload_URLEncodedRoundTrip(t *testing.T) {
	form, err := url.ParseQuery("a=1&b=2")
	if err != nil {
		t.Fatal(err)
	}
	pr := &model.ProxyRequest{
		Method:      http.MethodPost,
		ContentType: "application/x-www-form-urlencoded",
		Form:        form,
	}

	p := translatePayload(pr)
	if p.Kind != model.PayloadURLEncoded {
		t.Fatalf("kind = %v, want PayloadURLEncoded", p.Kind)
	}

	reparsed, err := url.ParseQuery(p.Encoded)
	if err != nil {
		t.Fatalf("re-parse %q: %v", p.Encoded, err)
	}
	if reparsed.Get("a") != "1" || reparsed.Get("b") != "2" || len(reparsed) != 2 {
		t.Errorf("round-trip mapping = %v, want a=1 b=2", reparsed)
	}
}

func TestTranslatePayload_RawFallback(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
	}{
		{"json body", "application/json"},
		{"absent content type", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := &model.ProxyRequest{
				Method:      http.MethodPut,
				ContentType: tt.contentType,
				RawBody:     []byte(`{"x":1}`),
			}
			p := translatePayload(pr)
			if p.Kind != model.PayloadRaw {
				t.Fatalf("kind = %v, want PayloadRaw", p.Kind)
			}
			if string(p.Raw) != `{"x":1}` {
				t.Errorf("raw = %q, want inbound bytes untouched", p.Raw)
			}
		})
	}
}

func TestTranslatePayload_MultipartFlattening(t *testing.T) {
	pr := &model.ProxyRequest{
		Method:      http.MethodPost,
		ContentType: "multipart/form-data; boundary=x",
		Form:        url.Values{"title": {"report"}},
		Uploads: map[string][]model.FileUpload{
			"doc": {
				{Filename: "a.pdf", ContentType: "application/pdf", Status: model.UploadOK, Open: stringOpener("pdf")},
			},
			"photos": {
				{Filename: "p0.jpg", ContentType: "image/jpeg", Status: model.UploadOK, Open: stringOpener("p0")},
				{Filename: "p1.jpg", ContentType: "image/jpeg", Status: model.UploadOK, Open: stringOpener("p1")},
			},
		},
	}

	p := translatePayload(pr)
	if p.Kind != model.PayloadMultipart {
		t.Fatalf("kind = %v, want PayloadMultipart", p.Kind)
	}

	if len(p.Plain) != 1 || p.Plain[0].Name != "title" || p.Plain[0].Value != "report" {
		t.Errorf("plain fields = %+v, want title=report", p.Plain)
	}

	names := make([]string, 0, len(p.Files))
	for _, f := range p.Files {
		names = append(names, f.Name)
	}
	want := []string{"doc", "photos[0]", "photos[1]"}
	if len(names) != len(want) {
		t.Fatalf("file names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("file name[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestTranslatePayload_FailedUploadSkippedSiblingsKept(t *testing.T) {
	pr := &model.ProxyRequest{
		Method:      http.MethodPost,
		ContentType: "multipart/form-data; boundary=x",
		Form:        url.Values{"note": {"hi"}},
		Uploads: map[string][]model.FileUpload{
			"attachments": {
				{Filename: "ok.txt", Status: model.UploadOK, Open: stringOpener("ok")},
				{Filename: "big.bin", Status: "upload too large"},
				{Filename: "ok2.txt", Status: model.UploadOK, Open: stringOpener("ok2")},
			},
		},
	}

	p := translatePayload(pr)

	names := make([]string, 0, len(p.Files))
	for _, f := range p.Files {
		names = append(names, f.Name)
	}
	// Indexes keep their original positions; the failed upload leaves a gap.
	want := []string{"attachments[0]", "attachments[2]"}
	if len(names) != len(want) {
		t.Fatalf("file names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("file name[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if len(p.Plain) != 1 {
		t.Errorf("plain fields = %+v, want note kept", p.Plain)
	}
}

func TestTranslatePayload_SingleFailedUploadOmitted(t *testing.T) {
	pr := &model.ProxyRequest{
		Method:      http.MethodPost,
		ContentType: "multipart/form-data; boundary=x",
		Uploads: map[string][]model.FileUpload{
			"doc": {
				{Filename: "big.bin", Status: "upload too large"},
			},
		},
	}

	p := translatePayload(pr)
	if len(p.Files) != 0 {
		t.Errorf("files = %+v, want none", p.Files)
	}
}

func TestTranslatePayload_DeleteCarriesBody(t *testing.T) {
	pr := &model.ProxyRequest{
		Method:      http.MethodDelete,
		ContentType: "application/json",
		RawBody:     []byte(`{"ids":[1]}`),
	}
	p := translatePayload(pr)
	if p.Kind != model.PayloadRaw {
		t.Errorf("kind = %v, want PayloadRaw for DELETE", p.Kind)
	}
}
