package scene

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLocalResource(t *testing.T) {
	_, thisFile, _, _ := runtime.Caller(0)
	res, err := NewResource(thisFile, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if res.IsRemote() {
		t.Fatal("expected local resource not to be flagged as remote")
	}
}

func TestHttpResource(t *testing.T) {
	_, thisFile, _, _ := runtime.Caller(0)
	thisDir := filepath.Dir(thisFile)

	server := httptest.NewServer(http.FileServer(http.Dir(thisDir)))
	defer server.Close()

	fetchUrl := server.URL + "/" + filepath.Base(thisFile)
	res, err := NewResource(fetchUrl, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if !res.IsRemote() {
		t.Fatal("expected http resource to be flagged as remote")
	}

	fetchUrl = server.URL + "/file-not-found.foo"
	expError := fmt.Sprintf("resource: could not fetch '%s': status %d", fetchUrl, 404)
	_, err = NewResource(fetchUrl, nil)
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get: %s; got %v", expError, err)
	}
}

func TestRelativeResource(t *testing.T) {
	_, thisFile, _, _ := runtime.Caller(0)
	parent, err := NewResource(thisFile, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer parent.Close()

	res, err := NewResource("scene.go", parent)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()
}
