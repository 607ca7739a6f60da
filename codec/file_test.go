package codec

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/unkn0wn-root/assetcache"
	"github.com/unkn0wn-root/assetcache/fingerprint"
)

type material struct {
	Name      string  `json:"name"`
	Roughness float64 `json:"roughness"`
}

func TestFileLoaderWriterRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.json")

	write := FileWriter[material](JSON[material]{})
	load := FileLoader[material](JSON[material]{})

	in := material{Name: "steel", Roughness: 0.4}
	if err := write(in, path); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out != in {
		t.Fatalf("roundtrip: got %+v want %+v", out, in)
	}
}

func TestDedupLoaderUnchanged(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "m.json")
	fp := fingerprint.NewLocal(0)
	defer fp.Close(ctx)

	write := FileWriter[material](JSON[material]{})
	load := DedupLoader[material](JSON[material]{}, fp, 0)

	if err := write(material{Name: "a"}, path); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := load(path); err != nil {
		t.Fatalf("first load: %v", err)
	}

	// same bytes: the loader must report unchanged instead of re-decoding
	if _, err := load(path); !errors.Is(err, assetcache.ErrUnchanged) {
		t.Fatalf("second load: got %v, want ErrUnchanged", err)
	}

	// changed bytes load normally again
	if err := write(material{Name: "b"}, path); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	m, err := load(path)
	if err != nil {
		t.Fatalf("third load: %v", err)
	}
	if m.Name != "b" {
		t.Fatalf("third load returned %+v", m)
	}
}

func TestDedupWriterSkipsIdenticalContent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "m.json")
	fp := fingerprint.NewLocal(0)
	defer fp.Close(ctx)

	write := DedupWriter[material](JSON[material]{}, fp, 0)

	if err := write(material{Name: "a"}, path); err != nil {
		t.Fatalf("first write: %v", err)
	}

	// remove the file; a deduped write must not recreate it
	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := write(material{Name: "a"}, path); err != nil {
		t.Fatalf("deduped write: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("identical content must not hit the disk again")
	}

	// new content writes through
	if err := write(material{Name: "b"}, path); err != nil {
		t.Fatalf("changed write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("changed content must be written: %v", err)
	}
}

func TestLimitRejectsOversizedPayload(t *testing.T) {
	c := Limit[material]{Inner: JSON[material]{}, MaxDecode: 4}
	if _, err := c.Decode([]byte(`{"name":"way too long"}`)); err == nil {
		t.Fatal("expected size limit error")
	}
}
