package scene

import (
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// The Resource type wraps a streamable local file or remote scene source.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Returns true if the resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Create a new resource data stream. If relTo is specified and pathToResource
// does not define a scheme, then the path to the new resource is generated by
// concatenating the base path of relTo and pathToResource.
//
// This function can handle http/https URLs by delegating to the net/http
// package. The caller must close the returned resource to prevent leaks.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	// Replace backslashes and try parsing as a URL
	url, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, err
	}

	// If this is a relative url, clone the parent url and adjust its path
	if url.Scheme == "" && relTo != nil {
		path := url.Path
		url, _ = url.Parse(relTo.url.String())
		prefix := url.Path
		if url.Scheme == "" {
			prefix, err = filepath.Abs(relTo.url.String())
			if err != nil {
				return nil, errors.Wrapf(err, "resource: could not detect abs path for %s", relTo.url.String())
			}
		}
		url.Path = filepath.Dir(prefix) + "/" + path
	}

	var reader io.ReadCloser
	switch url.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(url.Path))
		if err != nil {
			return nil, err
		}
	case "http", "https":
		resp, err := http.Get(url.String())
		if err != nil {
			return nil, errors.Wrapf(err, "resource: could not fetch '%s'", url.String())
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, errors.Errorf("resource: could not fetch '%s': status %d", url.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, errors.Errorf("resource: unsupported scheme '%s'", url.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        url,
	}, nil
}

// Create a resource from a reader.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	url, _ := url.Parse(name)
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        url,
	}
}
