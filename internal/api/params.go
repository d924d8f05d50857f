package api

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/pstuifzand/policy-tracker/internal/model"
)

// DateLayout is the format of the fromDate and toDate filters
const DateLayout = "2006-01-02"

// ListParams are the optional query parameters of the change list
type ListParams struct {
	Page       int
	Limit      int
	Company    string
	ChangeSize model.SizeBucket
	FromDate   string
	ToDate     string
}

// Query encodes the parameters, leaving out every empty or zero value
func (p ListParams) Query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Company != "" {
		q.Set("company", p.Company)
	}
	if p.ChangeSize != model.SizeAny {
		q.Set("changeSize", string(p.ChangeSize))
	}
	if p.FromDate != "" {
		q.Set("fromDate", p.FromDate)
	}
	if p.ToDate != "" {
		q.Set("toDate", p.ToDate)
	}
	return q
}

// ValidateDate checks that s is empty or a YYYY-MM-DD date
func ValidateDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return nil
}
