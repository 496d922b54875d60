package gcexec_test

import (
	"testing"

	"github.com/kestrelgrid/gcexec"
)

func TestSignatureString(t *testing.T) {
	var s gcexec.Signature
	s[0] = 0xde
	s[1] = 0xad
	got := s.String()
	want := "dead" + "000000000000000000000000000000000000000000000000000000000000"
	if len(got) != 64 {
		t.Fatalf("signature string length = %d, want 64", len(got))
	}
	if got[:4] != want[:4] {
		t.Errorf("String() = %q, want prefix %q", got, want[:4])
	}
}

func TestSignatureIsZero(t *testing.T) {
	var zero gcexec.Signature
	if !zero.IsZero() {
		t.Error("zero-value Signature should be IsZero()")
	}
	nonZero := sig("anything")
	if nonZero.IsZero() {
		t.Error("non-zero Signature reported IsZero()")
	}
}

func TestSubConstructors(t *testing.T) {
	if !gcexec.NullSub().IsNull() {
		t.Error("NullSub() should be IsNull()")
	}

	gc := &gcexec.GCRecord{Signature: sig("r")}
	rs := gcexec.RecordSub(gc)
	if rs.IsNull() {
		t.Error("RecordSub should not be IsNull()")
	}
	if rs.Kind != gcexec.SubRecord || rs.Record != gc {
		t.Errorf("RecordSub = %+v, want Kind=SubRecord wrapping %p", rs, gc)
	}

	s := sig("target")
	ss := gcexec.SignatureSub(s)
	if ss.IsNull() {
		t.Error("SignatureSub should not be IsNull()")
	}
	if ss.Kind != gcexec.SubSignature || ss.Signature != s {
		t.Errorf("SignatureSub = %+v, want Kind=SubSignature wrapping %v", ss, s)
	}
}

func TestFunctionInfoName(t *testing.T) {
	cases := []struct {
		idx  int64
		want string
	}{
		{0, "f_0"},
		{1, "f_1"},
		{15, "f_f"},
		{255, "f_ff"},
	}
	for _, c := range cases {
		fi := &gcexec.FunctionInfo{GlobalIndex: c.idx}
		if got := fi.Name(); got != c.want {
			t.Errorf("Name() for index %d = %q, want %q", c.idx, got, c.want)
		}
	}
}

func TestFunctionInfoCallString(t *testing.T) {
	fi := &gcexec.FunctionInfo{GlobalIndex: 7}
	if got, want := fi.CallString(nil), "f_7()"; got != want {
		t.Errorf("CallString(nil) = %q, want %q", got, want)
	}
	if got, want := fi.CallString([]string{"i[0]", "t0"}), "f_7(i[0], t0)"; got != want {
		t.Errorf("CallString = %q, want %q", got, want)
	}
}
