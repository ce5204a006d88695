package store

import (
	"context"
	"sort"
	"strings"

	"github.com/logimart/storefront/pkg/storage"
)

const diskExt = ".json"

// Disk keeps one <key>.json object per key on a storage.Disk.
type Disk struct {
	disk storage.Disk
	name string
}

// NewDisk wraps d. name labels metrics, e.g. "disk:local".
func NewDisk(d storage.Disk, name string) *Disk {
	if name == "" {
		name = "disk"
	}
	return &Disk{disk: d, name: name}
}

func (d *Disk) Name() string { return d.name }

func (d *Disk) Read(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := d.disk.Get(ctx, key+diskExt)
	if err != nil {
		if storage.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

func (d *Disk) Write(ctx context.Context, key string, value []byte) error {
	return d.disk.Put(ctx, key+diskExt, value)
}

func (d *Disk) Delete(ctx context.Context, key string) error {
	return d.disk.Delete(ctx, key+diskExt)
}

func (d *Disk) Keys(ctx context.Context) ([]string, error) {
	files, err := d.disk.Files(ctx, "")
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, f := range files {
		if strings.HasSuffix(f, diskExt) {
			keys = append(keys, strings.TrimSuffix(f, diskExt))
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (d *Disk) Close() error { return nil }
