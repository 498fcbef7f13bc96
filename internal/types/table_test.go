package types

import "testing"

func TestTable_RegisterGet(t *testing.T) {
	tbl := NewTable()

	opt := tbl.Register(Info{Name: "Option<i32>", Family: FamilyOption, Copyable: true, Try: true})
	res := tbl.Register(Info{Name: "Result<String, Error>", Family: FamilyResult, Try: true})

	if !opt.IsValid() || !res.IsValid() || opt == res {
		t.Fatalf("ids: opt=%d res=%d", opt, res)
	}
	if got := tbl.Get(opt); got.Family != FamilyOption || !got.Copyable {
		t.Errorf("Get(opt) = %+v", got)
	}
	if got := tbl.Get(res); got.Family != FamilyResult || got.Copyable {
		t.Errorf("Get(res) = %+v", got)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len = %d, want 2", tbl.Len())
	}
}

func TestTable_UnknownID(t *testing.T) {
	tbl := NewTable()
	if got := tbl.Get(NoTypeID); got.Family != FamilyOther || got.Try {
		t.Errorf("Get(NoTypeID) = %+v, want zero Info", got)
	}
	if got := tbl.Get(99); got != (Info{}) {
		t.Errorf("Get(out of range) = %+v, want zero Info", got)
	}
}

func TestTable_FromSlice(t *testing.T) {
	tbl := NewTable()
	id := tbl.Register(Info{Name: "Option<T>", Family: FamilyOption, Try: true})

	rebuilt := FromSlice(tbl.All())
	if got := rebuilt.Get(id); got.Name != "Option<T>" {
		t.Errorf("rebuilt Get = %+v", got)
	}
	if empty := FromSlice(nil); empty.Len() != 0 {
		t.Errorf("FromSlice(nil).Len() = %d", empty.Len())
	}
}
