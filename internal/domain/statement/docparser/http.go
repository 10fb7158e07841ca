package docparser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/brenkeeper/brenkeeper/internal/domain/statement"
)

// HTTPProvider calls a remote parsing service over HTTP. The payload travels
// as a multipart file part together with an optional bank hint and API
// credential, matching the collaborator's /parse contract.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	bank    string
	client  *http.Client
}

// NewHTTPProvider creates a provider for the service at baseURL. The timeout
// bounds the whole round trip; callers may cancel earlier via context.
func NewHTTPProvider(baseURL, apiKey, bank string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		bank:    bank,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) Name() string { return "http" }

func (p *HTTPProvider) Parse(ctx context.Context, payload []byte, mimetype string) ([]statement.ExtractedRecord, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="upload.pdf"`)
	if mimetype != "" {
		header.Set("Content-Type", mimetype)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to build request body: %w", err)
	}
	if _, err := part.Write(payload); err != nil {
		return nil, fmt.Errorf("failed to build request body: %w", err)
	}

	if p.bank != "" {
		if err := writer.WriteField("bank", p.bank); err != nil {
			return nil, fmt.Errorf("failed to build request body: %w", err)
		}
	}
	if p.apiKey != "" {
		if err := writer.WriteField("api_key", p.apiKey); err != nil {
			return nil, fmt.Errorf("failed to build request body: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/parse", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parser request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read parser response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("parser service returned %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	return decodeRecords(respBody)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
