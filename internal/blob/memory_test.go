package blob

import (
	"bytes"
	"context"
	"io"
	"testing"
)

func TestMemoryStore_Basic(t *testing.T) {
	bs := NewMemory()
	ctx := context.Background()
	info, err := bs.Put(ctx, "cleaned/panel.csv", bytes.NewReader([]byte("data")), PutOptions{ContentType: "text/csv", Metadata: map[string]string{"rows": "1"}})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Key != "cleaned/panel.csv" || info.Size != 4 {
		t.Fatalf("unexpected info %#v", info)
	}
	// duplicate
	if _, err := bs.Put(ctx, "cleaned/panel.csv", bytes.NewReader([]byte("x")), PutOptions{}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	// head
	h, err := bs.Head(ctx, "cleaned/panel.csv")
	if err != nil || h.ContentType != "text/csv" {
		t.Fatalf("head unexpected: %#v %v", h, err)
	}
	// get
	g, rc, err := bs.Get(ctx, "cleaned/panel.csv")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	b, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(b) != "data" || g.Size != 4 {
		t.Fatalf("bad payload")
	}
	// list
	list, err := bs.List(ctx, "cleaned/")
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v %+v", err, list)
	}
	if list2, err := bs.List(ctx, "zzz"); err != nil || len(list2) != 0 {
		t.Fatalf("expected empty list for unmatched prefix")
	}
	// delete
	ok, err := bs.Delete(ctx, "cleaned/panel.csv")
	if err != nil || !ok {
		t.Fatalf("delete expected true")
	}
	ok, _ = bs.Delete(ctx, "cleaned/panel.csv")
	if ok {
		t.Fatalf("second delete should be false")
	}
}

func TestMemoryStore_MetadataIsolated(t *testing.T) {
	bs := NewMemory()
	ctx := context.Background()
	md := map[string]string{"rows": "10"}
	if _, err := bs.Put(ctx, "a", bytes.NewReader(nil), PutOptions{Metadata: md}); err != nil {
		t.Fatalf("put: %v", err)
	}
	md["rows"] = "changed"
	h, err := bs.Head(ctx, "a")
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if h.Metadata["rows"] != "10" {
		t.Fatalf("metadata aliased caller map: %#v", h.Metadata)
	}
}
