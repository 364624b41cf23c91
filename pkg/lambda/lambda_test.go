package lambda

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"testing"

	"github.com/aws/aws-lambda-go/events"
)

func TestNewResponseEnvelope(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		message string
		want    string
	}{
		{"success message", 200, "user created", `{"message":"user created"}`},
		{"redirect message", 302, "moved", `{"message":"moved"}`},
		{"client error", 400, "invalid email", `{"error":"invalid email"}`},
		{"server error", 500, "internal server error", `{"error":"internal server error"}`},
	}
	for _, tc := range cases {
		resp := NewResponse(tc.status, tc.message, nil)
		if resp.StatusCode != tc.status {
			t.Errorf("%s: status %d, want %d", tc.name, resp.StatusCode, tc.status)
		}
		if string(resp.Body) != tc.want {
			t.Errorf("%s: body %s, want %s", tc.name, resp.Body, tc.want)
		}
		if resp.Headers["content-type"] != "application/json" {
			t.Errorf("%s: missing json content type", tc.name)
		}
	}
}

func TestNewResponsePayloadWins(t *testing.T) {
	resp := NewResponse(200, "ignored", map[string]string{"id": "p1"})

	var body map[string]string
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		t.Fatalf("body is not json: %v", err)
	}
	if body["id"] != "p1" {
		t.Errorf("unexpected payload %v", body)
	}
	if _, ok := body["message"]; ok {
		t.Error("message must be dropped when a payload is given")
	}
}

func TestRequestHeaderCaseInsensitive(t *testing.T) {
	req := &Request{Headers: map[string]string{"content-type": "application/json"}}

	if got := req.Header("Content-Type"); got != "application/json" {
		t.Errorf("expected case-insensitive match, got %q", got)
	}
	if got := req.Header("X-Missing"); got != "" {
		t.Errorf("expected empty for missing header, got %q", got)
	}

	var empty Request
	if got := empty.Header("Content-Type"); got != "" {
		t.Errorf("expected empty on nil headers, got %q", got)
	}
}

func multipartBody(t *testing.T, fields map[string]string, fileField, filename string, fileData []byte) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field failed: %v", err)
		}
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("create form file failed: %v", err)
		}
		if _, err := fw.Write(fileData); err != nil {
			t.Fatalf("write file failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer failed: %v", err)
	}
	return buf.Bytes(), w.FormDataContentType()
}

func TestParseForm(t *testing.T) {
	body, contentType := multipartBody(t,
		map[string]string{"name": "Alice", "email": "alice@example.com"},
		"file", "avatar.png", []byte("png bytes"))

	req := &Request{
		Headers: map[string]string{"Content-Type": contentType},
		Body:    body,
	}

	form, err := req.ParseForm()
	if err != nil {
		t.Fatalf("parse form failed: %v", err)
	}
	if form.Value("name") != "Alice" || form.Value("email") != "alice@example.com" {
		t.Errorf("unexpected values %v", form.Values)
	}
	file := form.File("file")
	if file == nil {
		t.Fatal("expected file part")
	}
	if file.Filename != "avatar.png" || string(file.Data) != "png bytes" {
		t.Errorf("unexpected file %+v", file)
	}
	if form.File("missing") != nil {
		t.Error("expected nil for missing file")
	}
}

func TestParseFormRejectsNonMultipart(t *testing.T) {
	req := &Request{
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    []byte(`{}`),
	}
	if _, err := req.ParseForm(); err == nil {
		t.Error("expected error for non-multipart body")
	}
}

func TestFromAPIGatewayRequest(t *testing.T) {
	event := events.APIGatewayProxyRequest{
		HTTPMethod:            "POST",
		Path:                  "/api/v1/posts",
		Headers:               map[string]string{"Content-Type": "application/json"},
		QueryStringParameters: map[string]string{"id": "p1"},
		PathParameters:        map[string]string{"userId": "alice"},
		Body:                  `{"text":"hi"}`,
		RequestContext: events.APIGatewayProxyRequestContext{
			Authorizer: map[string]interface{}{
				"claims": map[string]interface{}{"sub": "alice"},
			},
		},
	}

	req, err := FromAPIGatewayRequest(event)
	if err != nil {
		t.Fatalf("conversion failed: %v", err)
	}
	if req.Method != "POST" || req.Path != "/api/v1/posts" {
		t.Errorf("unexpected request %+v", req)
	}
	if req.Identity != "alice" {
		t.Errorf("expected identity alice, got %q", req.Identity)
	}
	if req.QueryParam("id") != "p1" || req.PathParam("userId") != "alice" {
		t.Error("parameters not carried over")
	}
	if string(req.Body) != `{"text":"hi"}` {
		t.Errorf("unexpected body %s", req.Body)
	}
}

func TestFromAPIGatewayRequestBase64(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	event := events.APIGatewayProxyRequest{
		HTTPMethod:      "POST",
		Path:            "/api/v1/posts",
		Body:            base64.StdEncoding.EncodeToString(raw),
		IsBase64Encoded: true,
	}

	req, err := FromAPIGatewayRequest(event)
	if err != nil {
		t.Fatalf("conversion failed: %v", err)
	}
	if !bytes.Equal(req.Body, raw) {
		t.Errorf("body not decoded: %v", req.Body)
	}
	if req.Identity != "" {
		t.Errorf("expected empty identity without authorizer, got %q", req.Identity)
	}

	event.Body = "not base64!!!"
	if _, err := FromAPIGatewayRequest(event); err == nil {
		t.Error("expected error for invalid base64 body")
	}
}

func TestToAPIGatewayResponse(t *testing.T) {
	out := ToAPIGatewayResponse(Message(201, "comment added"))
	if out.StatusCode != 201 {
		t.Errorf("status %d, want 201", out.StatusCode)
	}
	if out.Body != `{"message":"comment added"}` {
		t.Errorf("unexpected body %s", out.Body)
	}
	if out.Headers["content-type"] != "application/json" {
		t.Error("missing json content type")
	}
}
