package domain

import "strings"

// Tags holds the key/value tags attached to an Azure resource
type Tags map[string]string

// Lookup returns the value of the tag named key. Azure treats tag names
// case-insensitively, so an exact match is tried first and then a case-folded one.
func (t Tags) Lookup(key string) (string, bool) {
	if t == nil || key == "" {
		return "", false
	}
	if v, ok := t[key]; ok {
		return v, true
	}
	for k, v := range t {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// Has reports whether the tag named key is present, regardless of its value
func (t Tags) Has(key string) bool {
	_, ok := t.Lookup(key)
	return ok
}

type Subscription struct {
	ID   string
	Name string
	Tags Tags
}

type StorageAccount struct {
	ID            string
	Name          string
	ResourceGroup string
	Location      string
}
