// ABOUTME: Field-name fallback writer for bases with drifted physical schemas
// ABOUTME: Retries rejected writes with alternate field spellings from static alias tables
package airtable

import (
	"context"
	"errors"
)

// fieldAlias pairs a logical field with the physical spellings seen across
// bases, in priority order. The lists are static; nothing is learned from a
// successful retry.
type fieldAlias struct {
	Field      string
	Alternates []string
}

// contactAliases covers the Contacts table. Spanish-named bases predate the
// English schema, hence the ordering.
var contactAliases = []fieldAlias{
	{Field: "Notes", Alternates: []string{"Notas", "Observaciones", "Comments"}},
	{Field: "Phone", Alternates: []string{"Telefono", "Teléfono", "Phone Number"}},
	{Field: "LinkedIn URL", Alternates: []string{"LinkedIn", "Linkedin"}},
	{Field: "Status", Alternates: []string{"Estado", "Lead Status"}},
	{Field: "Position", Alternates: []string{"Cargo", "Job Title"}},
	{Field: "Email", Alternates: []string{"Correo", "Email Address"}},
}

// activityAliases extends the contact set with the Outcome/Activity Type
// split. Outcome comes first so it is the first substitution tried.
var activityAliases = append([]fieldAlias{
	{Field: "Outcome", Alternates: []string{"Activity Type"}},
	{Field: "Activity Type", Alternates: []string{"Outcome"}},
}, contactAliases...)

func aliasesFor(table string) []fieldAlias {
	if table == TableActivities {
		return activityAliases
	}
	return contactAliases
}

// tableDateFields names the date-valued columns per table, used to build the
// renormalized variant on an invalid-value rejection.
var tableDateFields = map[string][]string{
	TableActivities: {"Activity Date", "Next Follow-up Date"},
}

// variants returns the ordered alternate payloads to try after a
// schema-mismatch rejection. Each variant renames exactly one logical field
// to its next candidate spelling and leaves every other field untouched.
func variants(table string, fields map[string]any) []map[string]any {
	var out []map[string]any
	for _, fa := range aliasesFor(table) {
		val, present := fields[fa.Field]
		if !present {
			continue
		}
		for _, alt := range fa.Alternates {
			v := make(map[string]any, len(fields))
			for k, fv := range fields {
				if k != fa.Field {
					v[k] = fv
				}
			}
			v[alt] = val
			out = append(out, v)
		}
	}
	return out
}

// renormalizeDates rebuilds the payload with every declared date field passed
// through NormalizeDate. Unparseable dates are dropped from the payload
// entirely. The second return reports whether anything actually changed.
func renormalizeDates(table string, fields map[string]any) (map[string]any, bool) {
	names := tableDateFields[table]
	if len(names) == 0 {
		return fields, false
	}

	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}

	changed := false
	for _, name := range names {
		raw, ok := out[name].(string)
		if !ok {
			continue
		}
		norm, ok := NormalizeDate(raw)
		if !ok {
			delete(out, name)
			changed = true
			continue
		}
		if norm != raw {
			out[name] = norm
			changed = true
		}
	}
	return out, changed
}

// CreateWithFallback persists a new record despite not knowing the base's
// exact physical field names. The verbatim attempt goes first; an
// unknown-field rejection starts the alias variant walk, and an invalid-value
// rejection additionally tries the payload with its dates renormalized before
// the same walk. Attempts are strictly sequential, each one a real write. If
// everything fails the first attempt's failure is returned verbatim.
func (c *Client) CreateWithFallback(ctx context.Context, table string, fields map[string]any) (*Record, error) {
	rec, firstErr := c.Create(ctx, table, fields)
	if firstErr == nil {
		return rec, nil
	}

	var apiErr *APIError
	if !errors.As(firstErr, &apiErr) {
		return nil, firstErr
	}

	if apiErr.IsInvalidValue() {
		if renorm, changed := renormalizeDates(table, fields); changed {
			if rec, err := c.Create(ctx, table, renorm); err == nil {
				return rec, nil
			}
		}
	}

	if apiErr.IsUnknownFieldName() || apiErr.IsInvalidValue() {
		for _, v := range variants(table, fields) {
			if rec, err := c.Create(ctx, table, v); err == nil {
				return rec, nil
			}
		}
	}

	return nil, firstErr
}

// UpdateWithFallback patches an existing record with the same alias variant
// walk as CreateWithFallback. Date renormalization is a create-path concern
// only; update payloads carry dates the caller already normalized.
func (c *Client) UpdateWithFallback(ctx context.Context, table, id string, fields map[string]any) (*Record, error) {
	rec, firstErr := c.Update(ctx, table, id, fields)
	if firstErr == nil {
		return rec, nil
	}

	var apiErr *APIError
	if !errors.As(firstErr, &apiErr) {
		return nil, firstErr
	}

	if apiErr.IsUnknownFieldName() {
		for _, v := range variants(table, fields) {
			if rec, err := c.Update(ctx, table, id, v); err == nil {
				return rec, nil
			}
		}
	}

	return nil, firstErr
}
