package huffcode

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestDictionaryCacheHit(t *testing.T) {
	c, err := NewDictionaryCache(4)
	if err != nil {
		t.Fatal(err)
	}

	a, err := c.Parse(abracadabraDict)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Load(strings.NewReader(abracadabraDict))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("second load parsed the text again")
	}
	if c.Len() != 1 {
		t.Errorf("Len: got %d want 1", c.Len())
	}

	other, err := c.Parse("a: 1\nb: 0\n")
	if err != nil {
		t.Fatal(err)
	}
	if other == a || c.Len() != 2 {
		t.Errorf("distinct text shared an entry (Len %d)", c.Len())
	}
}

func TestDictionaryCacheErrorsNotCached(t *testing.T) {
	c, err := NewDictionaryCache(4)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Parse("X\n"); !errors.Is(err, ErrMalformedDictionary) {
		t.Fatalf("got %v want ErrMalformedDictionary", err)
	}
	if c.Len() != 0 {
		t.Errorf("malformed text cached (Len %d)", c.Len())
	}
}

func TestDictionaryCacheEviction(t *testing.T) {
	c, err := NewDictionaryCache(1)
	if err != nil {
		t.Fatal(err)
	}
	first, _ := c.Parse("a: 0\nb: 1\n")
	c.Parse("a: 1\nb: 0\n")
	again, _ := c.Parse("a: 0\nb: 1\n")
	if c.Len() != 1 {
		t.Errorf("Len: got %d want 1", c.Len())
	}
	if first == again {
		t.Error("evicted dictionary was returned")
	}
	if !first.Equal(again) {
		t.Error("reparsed dictionary differs")
	}
}

func TestDictionaryCacheOptions(t *testing.T) {
	c, err := NewDictionaryCache(2, WithSeparator(";"))
	if err != nil {
		t.Fatal(err)
	}
	d, err := c.Parse("a: 0;b: 1;")
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 2 {
		t.Errorf("Len: got %d want 2", d.Len())
	}
}

func TestDictionaryCacheInvalidSize(t *testing.T) {
	if _, err := NewDictionaryCache(0); err == nil {
		t.Error("expected error for zero size")
	}
}

func TestDictionaryCacheLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.txt")
	if err := os.WriteFile(path, []byte(abracadabraDict), 0o644); err != nil {
		t.Fatal(err)
	}
	copyPath := filepath.Join(dir, "copy.txt")
	if err := os.WriteFile(copyPath, []byte(abracadabraDict), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := NewDictionaryCache(8)
	if err != nil {
		t.Fatal(err)
	}
	a, err := c.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.LoadFile(copyPath)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("identical files parsed twice")
	}
	if _, err := c.LoadFile(filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v", err)
	}
}

func TestDictionaryCacheConcurrent(t *testing.T) {
	c, err := NewDictionaryCache(4)
	if err != nil {
		t.Fatal(err)
	}
	data := []byte("abracadabra")
	code := "01111100101010001111100"

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := c.Parse(abracadabraDict)
			if err != nil {
				errs <- err
				return
			}
			decoded, err := DecodeString(code, d)
			if err != nil {
				errs <- err
				return
			}
			if string(decoded) != string(data) {
				errs <- errors.New("decoded " + string(decoded))
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
