package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrigest/internal/api"
)

var testRules = RuleSet{
	{Field: "nom", Kind: Required, Message: "Le nom est requis"},
	{Field: "quantite", Kind: Positive, Message: "Doit être > 0"},
}

func TestFormCreateMode(t *testing.T) {
	submitted := 0
	f := NewForm(testRules, Values{"unite": "kg"}, nil, func(ctx context.Context, v Values) error {
		submitted++
		return nil
	})

	assert.False(t, f.EditMode())
	assert.Equal(t, FormEditing, f.State())
	assert.Equal(t, "kg", f.Value("unite"), "defaults seed the draft")

	t.Run("validation failure blocks the network call", func(t *testing.T) {
		ok := f.Submit(context.Background())
		require.False(t, ok)
		assert.Equal(t, 0, submitted, "no call may be made on a locally invalid draft")
		assert.Equal(t, "Le nom est requis", f.Error("nom"))
		assert.Equal(t, "Doit être > 0", f.Error("quantite"))
	})

	t.Run("editing a field clears its error", func(t *testing.T) {
		f.Set("nom", "Maïs")
		assert.Empty(t, f.Error("nom"))
		assert.NotEmpty(t, f.Error("quantite"), "other field errors stay")
	})

	t.Run("clean draft submits once", func(t *testing.T) {
		f.Set("quantite", "50")
		ok := f.Submit(context.Background())
		require.True(t, ok)
		assert.Equal(t, 1, submitted)
		assert.Empty(t, f.Errors())
	})
}

func TestFormEditMode(t *testing.T) {
	load := func(ctx context.Context) (Values, error) {
		return Values{"nom": "Riz", "quantite": "20", "unite": ""}, nil
	}
	f := NewForm(testRules, Values{"unite": "kg"}, load, func(ctx context.Context, v Values) error {
		return nil
	})

	assert.True(t, f.EditMode())
	assert.Equal(t, FormLoading, f.State())

	require.NoError(t, f.LoadInitial(context.Background()))
	assert.Equal(t, FormEditing, f.State())
	assert.Equal(t, "Riz", f.Value("nom"))
	assert.Equal(t, "kg", f.Value("unite"), "blank loaded fields keep their defaults")
}

func TestFormLoadFailure(t *testing.T) {
	load := func(ctx context.Context) (Values, error) {
		return nil, errors.New("boom")
	}
	f := NewForm(testRules, Values{}, load, nil)

	err := f.LoadInitial(context.Background())
	require.Error(t, err)
	assert.Equal(t, FormLoading, f.State(), "a failed load never reaches editing")
}

func TestFormSplitSubmission(t *testing.T) {
	t.Run("begin snapshots the draft", func(t *testing.T) {
		var sent Values
		f := NewForm(nil, Values{"nom": "Maïs"}, nil, func(ctx context.Context, v Values) error {
			sent = v
			return nil
		})

		draft, ok := f.Begin()
		require.True(t, ok)
		assert.Equal(t, FormSubmitting, f.State())

		// Edits made while the call is in flight stay out of the wire
		// payload.
		f.Set("nom", "Riz")
		require.NoError(t, f.Send(context.Background(), draft))
		assert.Equal(t, "Maïs", sent["nom"])

		assert.True(t, f.Finish(nil))
		assert.Equal(t, FormEditing, f.State())
	})

	t.Run("begin refuses while submitting", func(t *testing.T) {
		f := NewForm(nil, Values{}, nil, func(ctx context.Context, v Values) error { return nil })
		_, ok := f.Begin()
		require.True(t, ok)
		_, ok = f.Begin()
		assert.False(t, ok)
	})

	t.Run("begin keeps validation local", func(t *testing.T) {
		f := NewForm(testRules, Values{}, nil, func(ctx context.Context, v Values) error { return nil })
		draft, ok := f.Begin()
		require.False(t, ok)
		assert.Nil(t, draft)
		assert.Equal(t, FormEditing, f.State())
		assert.Equal(t, "Le nom est requis", f.Error("nom"))
	})

	t.Run("finish maps rejections like submit", func(t *testing.T) {
		f := NewForm(nil, Values{}, nil, func(ctx context.Context, v Values) error { return nil })
		_, ok := f.Begin()
		require.True(t, ok)

		assert.False(t, f.Finish(api.FieldErrors{"nom": "Ce nom existe déjà"}))
		assert.Equal(t, "Ce nom existe déjà", f.Error("nom"))
		assert.Equal(t, FormEditing, f.State())
	})
}

func TestFormFetchInitialDefersStateToApply(t *testing.T) {
	load := func(ctx context.Context) (Values, error) {
		return Values{"nom": "Riz", "unite": ""}, nil
	}
	f := NewForm(testRules, Values{"unite": "kg"}, load, nil)

	values, err := f.FetchInitial(context.Background())
	require.NoError(t, err)
	assert.Equal(t, FormLoading, f.State(), "fetch alone does not reach editing")
	assert.Empty(t, f.Value("nom"))

	f.ApplyInitial(values)
	assert.Equal(t, FormEditing, f.State())
	assert.Equal(t, "Riz", f.Value("nom"))
	assert.Equal(t, "kg", f.Value("unite"))
}

func TestFormSubmitServerRejections(t *testing.T) {
	t.Run("field-keyed rejection maps onto the fields", func(t *testing.T) {
		f := NewForm(nil, Values{}, nil, func(ctx context.Context, v Values) error {
			return api.FieldErrors{"nom": "Ce nom existe déjà"}
		})
		ok := f.Submit(context.Background())
		require.False(t, ok)
		assert.Equal(t, "Ce nom existe déjà", f.Error("nom"))
		assert.Empty(t, f.Error(GeneralError))
	})

	t.Run("transport failure becomes a general error", func(t *testing.T) {
		f := NewForm(nil, Values{}, nil, func(ctx context.Context, v Values) error {
			return errors.New("connection refused")
		})
		ok := f.Submit(context.Background())
		require.False(t, ok)
		assert.Equal(t, "Erreur lors de la sauvegarde", f.Error(GeneralError))
	})

	t.Run("draft survives a rejection", func(t *testing.T) {
		f := NewForm(nil, Values{"nom": "Tomate"}, nil, func(ctx context.Context, v Values) error {
			return errors.New("boom")
		})
		f.Submit(context.Background())
		assert.Equal(t, "Tomate", f.Value("nom"))
	})
}
