package project

import "time"

// FieldDiff records one changed field's old and new value.
type FieldDiff struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// DiffRecord is the field-by-field change set appended to a copy's history on
// every update. Records are never removed.
type DiffRecord struct {
	Name           *FieldDiff `json:"projectName,omitempty"`
	Description    *FieldDiff `json:"projectDescription,omitempty"`
	Status         *FieldDiff `json:"projectStatus,omitempty"`
	CustomMetaData *FieldDiff `json:"customMetaData,omitempty"`
	Collaborators  *FieldDiff `json:"projectCollaborators,omitempty"`
	Public         *FieldDiff `json:"public,omitempty"`
	AppliedAt      time.Time  `json:"appliedAt"`
}

// DiffRequest carries the fields a patch wants to change. Nil fields are left
// untouched; a nil Collaborators slice means the collaborator set is not part
// of the patch.
type DiffRequest struct {
	Name           *string
	Description    *string
	Status         *Status
	CustomMetaData map[string]string
	Collaborators  []string
	Public         *bool
}

// buildDiff records the old and new value of every field the request touches.
func buildDiff(c *Copy, req DiffRequest, newCollaborators []string) DiffRecord {
	diff := DiffRecord{AppliedAt: time.Now()}

	if req.Name != nil && *req.Name != c.Name {
		diff.Name = &FieldDiff{Old: c.Name, New: *req.Name}
	}
	if req.Description != nil && *req.Description != c.Description {
		diff.Description = &FieldDiff{Old: c.Description, New: *req.Description}
	}
	if req.Status != nil && *req.Status != c.Status {
		diff.Status = &FieldDiff{Old: c.Status, New: *req.Status}
	}
	if req.CustomMetaData != nil {
		diff.CustomMetaData = &FieldDiff{Old: c.CustomMetaData, New: req.CustomMetaData}
	}
	if newCollaborators != nil {
		diff.Collaborators = &FieldDiff{Old: c.Collaborators, New: newCollaborators}
	}
	if req.Public != nil && *req.Public != c.Public {
		diff.Public = &FieldDiff{Old: c.Public, New: *req.Public}
	}

	return diff
}

// applyDiff stages the requested changes onto the copy and appends the diff
// record to its history.
func applyDiff(c *Copy, req DiffRequest, newCollaborators []string, diff DiffRecord) {
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.CustomMetaData != nil {
		c.CustomMetaData = req.CustomMetaData
	}
	if newCollaborators != nil {
		c.Collaborators = newCollaborators
	}
	if req.Public != nil {
		c.Public = *req.Public
	}
	c.Diffs = append(c.Diffs, diff)
}
