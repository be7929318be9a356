package sign

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/ytaudiobar/release-tools/log"
)

// signatureMarker precedes the signature value in sign_update's output.
const signatureMarker = `sparkle:edSignature="`

const userAgent = "YTAudioBar-Appcast-Generator"

// Signer produces Sparkle EdDSA signatures by running the sign_update
// tool shipped with Sparkle over a downloaded update package.
type Signer struct {
	// Tool is the sign_update executable, typically ./sign_update.
	Tool string
	// PrivateKey is the EdDSA private key. It is passed to the tool on
	// stdin so it never appears in the process list.
	PrivateKey string
}

// Sign downloads the package at url to a temporary file, signs it and
// returns the base64 signature value.
func (s *Signer) Sign(ctx context.Context, url string) (string, error) {
	path, err := s.download(ctx, url)
	if err != nil {
		return "", err
	}
	defer os.Remove(path)

	log.G(ctx).Debugf("Signing %s", path)

	cmd := exec.Command(s.Tool, path)
	cmd.Stdin = strings.NewReader(s.PrivateKey)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "running %s: %s", s.Tool, strings.TrimSpace(stderr.String()))
	}

	return parseSignature(out.String())
}

func (s *Signer) download(ctx context.Context, url string) (string, error) {
	log.G(ctx).Debugf("Downloading %s", url)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "downloading %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading %s: %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp("", "sign-*.dmg")
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		os.Remove(tmp.Name())
		return "", errors.Wrapf(err, "downloading %s", url)
	}
	return tmp.Name(), nil
}

// parseSignature extracts the signature value from sign_update's output,
// which looks like: sparkle:edSignature="..." length="...".
func parseSignature(output string) (string, error) {
	_, rest, found := strings.Cut(output, signatureMarker)
	if !found {
		return "", fmt.Errorf("no signature in output: %q", strings.TrimSpace(output))
	}
	sig, _, found := strings.Cut(rest, `"`)
	if !found {
		return "", fmt.Errorf("unterminated signature in output: %q", strings.TrimSpace(output))
	}
	return sig, nil
}
