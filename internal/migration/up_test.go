package migration

import (
	"testing"
	"testing/fstest"
)

func TestPreviousVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/000001_create_sessions_table.up.sql":   {Data: []byte("")},
		"migrations/000001_create_sessions_table.down.sql": {Data: []byte("")},
		"migrations/000003_add_index.up.sql":               {Data: []byte("")},
		"migrations/000002_add_column.up.sql":              {Data: []byte("")},
		"migrations/README.md":                             {Data: []byte("")},
	}

	tests := []struct {
		dirty   int
		want    int
		wantErr bool
	}{
		{dirty: 3, want: 2},
		{dirty: 2, want: 1},
		{dirty: 1, want: -1},
		{dirty: 9, wantErr: true},
	}
	for _, tc := range tests {
		got, err := previousVersion(fsys, tc.dirty)
		if tc.wantErr {
			if err == nil {
				t.Errorf("previousVersion(%d): expected error", tc.dirty)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("previousVersion(%d) = %d, %v; want %d", tc.dirty, got, err, tc.want)
		}
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	vs, err := versions(migrationsFS)
	if err != nil {
		t.Fatalf("versions: %v", err)
	}
	if len(vs) == 0 || vs[0] != 1 {
		t.Errorf("expected embedded migrations starting at 1, got %v", vs)
	}
}
