package inspekt_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/inspekt"
	"github.com/aretw0/inspekt/pkg/core"
)

type exampleClock struct{ next core.Token }

func (c *exampleClock) Next() core.Token {
	c.next++
	return c.next
}

// Example_basic commits a photo and exports a report on it.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "inspekt-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	svc, err := inspekt.New(filepath.Join(tmpDir, "captures"),
		inspekt.WithTokenSource(&exampleClock{next: 1_700_000_000_000}),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// A transient photo, as a camera would leave it.
	photo := filepath.Join(tmpDir, "transient.jpg")
	if err := os.WriteFile(photo, []byte{0xff, 0xd8, 0xff, 0xd9}, 0644); err != nil {
		log.Fatal(err)
	}

	rec, err := svc.Commit(ctx, core.PhotoHandle{Path: photo}, inspekt.FormState{
		TechnicianName: "Jan",
		Category:       core.CategoryAerialCables,
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("committed", rec.PhotoRef)

	res, err := svc.Export(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("report", filepath.Base(res.Path))
	fmt.Println("shared:", res.Shared, errors.Is(res.Sharing, core.ErrSharingUnavailable))

	// Output:
	// committed photo_1700000000001.jpg
	// report metadata_1700000000001.html
	// shared: false true
}
