package match

import (
	"errors"
	"strings"
	"testing"

	"sheetmatcher/internal/model"
)

func TestResolveSheets_CaseInsensitive(t *testing.T) {
	t.Parallel()

	assignment, err := ResolveSheets([]string{"Noc", "Rec"})
	if err != nil {
		t.Fatalf("ResolveSheets: %v", err)
	}
	if assignment.LookupSheet != "Noc" {
		t.Fatalf("LookupSheet=%q, want %q", assignment.LookupSheet, "Noc")
	}
	if assignment.TargetSheet != "Rec" {
		t.Fatalf("TargetSheet=%q, want %q", assignment.TargetSheet, "Rec")
	}
}

func TestResolveSheets_LastMatchWins(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		sheets     []string
		wantLookup string
		wantTarget string
	}{
		{"nov覆盖NOV", []string{"NOV", "REC", "nov"}, "nov", "REC"},
		{"nov覆盖noc", []string{"noc", "nov", "rec"}, "nov", "rec"},
		{"rec后写覆盖", []string{"rec", "noc", "Rec"}, "noc", "Rec"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assignment, err := ResolveSheets(tc.sheets)
			if err != nil {
				t.Fatalf("ResolveSheets(%v): %v", tc.sheets, err)
			}
			if assignment.LookupSheet != tc.wantLookup {
				t.Fatalf("LookupSheet=%q, want %q", assignment.LookupSheet, tc.wantLookup)
			}
			if assignment.TargetSheet != tc.wantTarget {
				t.Fatalf("TargetSheet=%q, want %q", assignment.TargetSheet, tc.wantTarget)
			}
		})
	}
}

func TestResolveSheets_MissingRoles(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		sheets      []string
		wantMissing []model.SheetRole
	}{
		{"全部缺失", []string{"Sheet1", "Data"}, []model.SheetRole{model.RoleLookup, model.RoleTarget}},
		{"缺目标表", []string{"noc", "Sheet1"}, []model.SheetRole{model.RoleTarget}},
		{"缺查找表", []string{"rec"}, []model.SheetRole{model.RoleLookup}},
		{"空工作簿", nil, []model.SheetRole{model.RoleLookup, model.RoleTarget}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveSheets(tc.sheets)
			var msErr *MissingSheetError
			if !errors.As(err, &msErr) {
				t.Fatalf("err=%v, want *MissingSheetError", err)
			}
			if len(msErr.MissingRoles) != len(tc.wantMissing) {
				t.Fatalf("MissingRoles=%v, want %v", msErr.MissingRoles, tc.wantMissing)
			}
			for i, role := range tc.wantMissing {
				if msErr.MissingRoles[i] != role {
					t.Fatalf("MissingRoles[%d]=%s, want %s", i, msErr.MissingRoles[i], role)
				}
			}
			if len(msErr.SheetNames) != len(tc.sheets) {
				t.Fatalf("SheetNames=%v, want %v", msErr.SheetNames, tc.sheets)
			}
		})
	}
}

func TestMissingSheetError_Message(t *testing.T) {
	t.Parallel()

	_, err := ResolveSheets([]string{"Orders", "Summary"})
	if err == nil {
		t.Fatal("want error, got nil")
	}

	msg := err.Error()
	for _, want := range []string{"NOC/NOV", "REC", "Orders", "Summary"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error message %q missing %q", msg, want)
		}
	}
}

func TestResolveSheets_NoPartialResult(t *testing.T) {
	t.Parallel()

	// 只识别出一个角色时不返回半成品
	assignment, err := ResolveSheets([]string{"noc", "other"})
	if err == nil {
		t.Fatal("want error, got nil")
	}
	if assignment.LookupSheet != "" || assignment.TargetSheet != "" {
		t.Fatalf("assignment=%+v, want zero value", assignment)
	}
}
