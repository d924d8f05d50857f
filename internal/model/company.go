package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Company is a tracked company as listed by the companies endpoint
type Company struct {
	Name string `json:"name"`
}

// UnmarshalJSON accepts either a bare name or an object with a name field
func (c *Company) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		c.Name = name
		return nil
	}

	type plain Company
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("company: %w", err)
	}
	*c = Company(p)
	return nil
}

// CompanyList decodes either a bare array or an object wrapping it
// under "companies".
type CompanyList []Company

// UnmarshalJSON implements json.Unmarshaler
func (l *CompanyList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var companies []Company
		if err := json.Unmarshal(trimmed, &companies); err != nil {
			return err
		}
		*l = companies
		return nil
	}

	var wrapped struct {
		Companies *[]Company `json:"companies"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	if wrapped.Companies == nil {
		return fmt.Errorf("companies: missing list")
	}
	*l = *wrapped.Companies
	return nil
}

// Names returns the company names in order
func (l CompanyList) Names() []string {
	names := make([]string, 0, len(l))
	for _, c := range l {
		names = append(names, c.Name)
	}
	return names
}
