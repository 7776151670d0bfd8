// Package export serializes ledger data to delimited text downloads.
// Output is UTF-8 with a BOM so spreadsheet tools render Korean headers and
// values correctly on import.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/smartcowork/cowork-gin/internal/model"
)

// utf8BOM precedes every export so Excel detects the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Placeholder rendered for item cells of not-applicable responses.
const Placeholder = "-"

const timestampLayout = "2006-01-02 15:04"

// FilterResponses returns the responses included in an export. With
// excludeNotApplicable set, not-applicable rows are dropped entirely;
// otherwise every response stays and renders placeholder item cells.
func FilterResponses(responses []*model.ResponseModel, excludeNotApplicable bool) []*model.ResponseModel {
	if !excludeNotApplicable {
		return responses
	}
	out := make([]*model.ResponseModel, 0, len(responses))
	for _, res := range responses {
		if !res.NotApplicable {
			out = append(out, res)
		}
	}
	return out
}

// CollectionFilename names a data-collection export. The filtered variant
// carries the extra suffix so both downloads can coexist.
func CollectionFilename(title string, excludeNotApplicable bool) string {
	if excludeNotApplicable {
		return fmt.Sprintf("%s_결과_필터.csv", title)
	}
	return fmt.Sprintf("%s_결과.csv", title)
}

// CollectionCSV renders one row per response: submitter, one column per item
// in the request's declared order, then status and submission time. Missing
// values render as empty strings; not-applicable rows render placeholders.
func CollectionCSV(request *model.RequestModel, responses []*model.ResponseModel) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)

	header := make([]string, 0, len(request.Items)+3)
	header = append(header, "제출자")
	for _, item := range request.Items {
		header = append(header, item.Name)
	}
	header = append(header, "상태", "제출시간")
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, res := range responses {
		row := make([]string, 0, len(header))
		row = append(row, res.TargetName)
		for _, item := range request.Items {
			if res.NotApplicable {
				row = append(row, Placeholder)
			} else {
				row = append(row, res.Value(item.ID))
			}
		}
		status := "제출완료"
		if res.NotApplicable {
			status = "해당없음"
		}
		row = append(row, status, res.SubmittedAt.Format(timestampLayout))
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ApprovalFilename names a work approval export.
func ApprovalFilename(templateTitle string) string {
	return fmt.Sprintf("%s_결과.csv", templateTitle)
}

// ApprovalCSV renders one row per embedded employee line item: identity
// columns first, then one column per template item. The item list comes from
// the live template; when the template is gone only identity columns remain.
func ApprovalCSV(approval *model.ApprovalModel, items []model.Item) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)

	header := make([]string, 0, len(items)+4)
	header = append(header, "성명", "사번", "부서", "팀")
	for _, item := range items {
		header = append(header, item.Name)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, emp := range approval.Employees {
		row := make([]string, 0, len(header))
		row = append(row, emp.Name, emp.EmployeeID, emp.Department, emp.Team)
		for _, item := range items {
			row = append(row, emp.Values[item.ID])
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
