package store

import (
	"reflect"
	"testing"
)

func TestChunkRange(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		chunkSize int
		want      [][2]int
	}{
		{name: "empty", total: 0, chunkSize: 10, want: nil},
		{name: "single chunk", total: 5, chunkSize: 10, want: [][2]int{{0, 5}}},
		{name: "exact chunks", total: 10, chunkSize: 5, want: [][2]int{{0, 5}, {5, 10}}},
		{name: "remainder", total: 7, chunkSize: 3, want: [][2]int{{0, 3}, {3, 6}, {6, 7}}},
		{name: "zero chunk size means one chunk", total: 4, chunkSize: 0, want: [][2]int{{0, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][2]int
			err := ChunkRange(tt.total, tt.chunkSize, func(start, end int) error {
				got = append(got, [2]int{start, end})
				return nil
			})
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ChunkRange windows = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDedupeStrings(t *testing.T) {
	got := DedupeStrings([]string{"reuters", "", "ft", "reuters", "ft"})
	want := []string{"reuters", "ft"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DedupeStrings = %v, want %v", got, want)
	}
	if DedupeStrings(nil) != nil {
		t.Error("nil input should return nil")
	}
}
