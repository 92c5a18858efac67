package draftclaim_test

import (
	"testing"

	"github.com/siddhant230/draftclaim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		document draftclaim.Document
		wantErr  bool
	}{
		{
			name:     "valid disclosure",
			document: draftclaim.Document{Role: draftclaim.RoleDisclosure, Path: "id.docx", Text: "The invention."},
		},
		{
			name:     "valid claims without comments",
			document: draftclaim.Document{Role: draftclaim.RoleClaims, Path: "claims.docx", Text: "Claim 1."},
		},
		{
			name:     "additional info may be empty",
			document: draftclaim.Document{Role: draftclaim.RoleAdditionalInfo, Path: "extra.docx"},
		},
		{
			name:     "unknown role",
			document: draftclaim.Document{Role: "summary", Path: "x.docx", Text: "text"},
			wantErr:  true,
		},
		{
			name:     "missing path",
			document: draftclaim.Document{Role: draftclaim.RoleClaims, Text: "text"},
			wantErr:  true,
		},
		{
			name:     "claims without text",
			document: draftclaim.Document{Role: draftclaim.RoleClaims, Path: "claims.docx"},
			wantErr:  true,
		},
		{
			name:     "disclosure without text",
			document: draftclaim.Document{Role: draftclaim.RoleDisclosure, Path: "id.docx"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.document.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, draftclaim.EINVALID, draftclaim.ErrorCode(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDocumentSet_Validate(t *testing.T) {
	t.Parallel()

	disclosure := &draftclaim.Document{Role: draftclaim.RoleDisclosure, Path: "id.docx", Text: "The invention."}
	claims := &draftclaim.Document{Role: draftclaim.RoleClaims, Path: "claims.docx", Text: "Claim 1."}

	t.Run("valid without additional info", func(t *testing.T) {
		t.Parallel()

		set := draftclaim.DocumentSet{Disclosure: disclosure, Claims: claims}
		assert.NoError(t, set.Validate())
	})

	t.Run("requires a disclosure", func(t *testing.T) {
		t.Parallel()

		set := draftclaim.DocumentSet{Claims: claims}
		err := set.Validate()
		require.Error(t, err)
		assert.Equal(t, draftclaim.EINVALID, draftclaim.ErrorCode(err))
	})

	t.Run("requires claims", func(t *testing.T) {
		t.Parallel()

		set := draftclaim.DocumentSet{Disclosure: disclosure}
		err := set.Validate()
		require.Error(t, err)
		assert.Equal(t, draftclaim.EINVALID, draftclaim.ErrorCode(err))
	})
}

func TestDocumentSet_Questions(t *testing.T) {
	t.Parallel()

	set := draftclaim.DocumentSet{
		Disclosure: &draftclaim.Document{Role: draftclaim.RoleDisclosure, Path: "id.docx", Text: "text"},
		Claims: &draftclaim.Document{
			Role: draftclaim.RoleClaims,
			Path: "claims.docx",
			Text: "Claim 1.",
			Comments: []draftclaim.Comment{
				{ID: "0", Text: "First question"},
				{ID: "1", Text: "Second question"},
			},
		},
	}

	questions := set.Questions()

	require.Len(t, questions, 2)
	assert.Equal(t, "First question", questions[0].Text)
	assert.Equal(t, "Second question", questions[1].Text)
}

func TestDocumentSet_AdditionalText(t *testing.T) {
	t.Parallel()

	set := draftclaim.DocumentSet{}
	assert.Empty(t, set.AdditionalText())

	set.AdditionalInfo = &draftclaim.Document{Role: draftclaim.RoleAdditionalInfo, Path: "extra.docx", Text: "prior art"}
	assert.Equal(t, "prior art", set.AdditionalText())
}
