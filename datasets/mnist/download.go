package mnist

import "crypto/sha256"
import "fmt"
import "io"
import "net/http"
import "os"
import "time"

import "github.com/cenkalti/backoff/v4"

const baseURL = "https://storage.googleapis.com/cvdf-datasets/mnist/"

// Download fetches the four canonical MNIST files into dir, retrying with
// exponential backoff and verifying digests. Files already present with a
// good digest are kept.
func Download(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for name, digest := range files {
		path := dir + name
		if raw, err := os.ReadFile(path); err == nil {
			if fmt.Sprintf("%x", sha256.Sum256(raw)) == digest {
				continue
			}
		}
		op := func() error {
			return fetch(baseURL+name, path, digest)
		}
		b := backoff.NewExponentialBackOff()
		b.MaxElapsedTime = 2 * time.Minute
		if err := backoff.Retry(op, b); err != nil {
			return fmt.Errorf("mnist: downloading '%s': %w", name, err)
		}
	}
	return nil
}

func fetch(url, path, digest string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return backoff.Permanent(fmt.Errorf("status %s", resp.Status))
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %s", resp.Status)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if fmt.Sprintf("%x", sha256.Sum256(raw)) != digest {
		return fmt.Errorf("digest mismatch")
	}
	tmp := path + ".part"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return backoff.Permanent(err)
	}
	return os.Rename(tmp, path)
}
