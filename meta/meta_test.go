package meta

import (
	"testing"
)

func TestVaultAddAndGet(t *testing.T) {
	v := New()
	v.Add("ANNO", []byte("hello"))
	v.Add("ANNO", []byte("world"))
	v.Add("AUTH", []byte("someone"))

	list := v.Get("ANNO")
	if list.Len() != 2 {
		t.Fatalf("ANNO Len() = %d, want 2", list.Len())
	}
	if string(list.Items[0]) != "hello" || string(list.Items[1]) != "world" {
		t.Fatalf("ANNO items = %q, want [hello world]", list.Items)
	}

	if got, want := v.Tags(), []string{"ANNO", "AUTH"}; !equalStrings(got, want) {
		t.Fatalf("Tags() = %v, want %v", got, want)
	}
	if v.Empty() {
		t.Fatal("expected a non-empty vault")
	}
}

func TestVaultAddCopiesData(t *testing.T) {
	v := New()
	buf := []byte("mutate me")
	v.Add("TEXT", buf)
	buf[0] = 'X'
	if got := v.Get("TEXT").Items[0][0]; got == 'X' {
		t.Fatal("Vault.Add must copy its input, not alias the caller's slice")
	}
}

func TestNilVaultIsEmptyAndSafe(t *testing.T) {
	var v *Vault
	if !v.Empty() {
		t.Fatal("nil *Vault should report Empty")
	}
	if got := v.Get("ANNO"); got.Len() != 0 {
		t.Fatalf("nil *Vault Get should return an empty List, got %d items", got.Len())
	}
	if got := v.Tags(); got != nil {
		t.Fatalf("nil *Vault Tags() = %v, want nil", got)
	}
	v.Add("ANNO", []byte("x")) // must not panic.
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
