package match

import (
	"strings"

	"sheetmatcher/internal/model"
)

// lookupSheetNames 查找表可接受的 sheet 名（不区分大小写）
var lookupSheetNames = []string{"noc", "nov"}

// targetSheetName 目标表的 sheet 名（不区分大小写）
const targetSheetName = "rec"

// ResolveSheets 在工作簿的 sheet 名列表中识别查找表与目标表
// 按列表顺序扫描，同一角色多次命中时保留最后一个。
// 任一角色缺失则返回 *MissingSheetError，不产出部分结果。
func ResolveSheets(sheetNames []string) (model.SheetAssignment, error) {
	var assignment model.SheetAssignment

	for _, name := range sheetNames {
		lower := strings.ToLower(name)
		if isLookupSheet(lower) {
			assignment.LookupSheet = name
		}
		if lower == targetSheetName {
			assignment.TargetSheet = name
		}
	}

	var missing []model.SheetRole
	if assignment.LookupSheet == "" {
		missing = append(missing, model.RoleLookup)
	}
	if assignment.TargetSheet == "" {
		missing = append(missing, model.RoleTarget)
	}
	if len(missing) > 0 {
		names := make([]string, len(sheetNames))
		copy(names, sheetNames)
		return model.SheetAssignment{}, &MissingSheetError{MissingRoles: missing, SheetNames: names}
	}

	return assignment, nil
}

func isLookupSheet(lower string) bool {
	for _, candidate := range lookupSheetNames {
		if lower == candidate {
			return true
		}
	}
	return false
}
