package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverCreateRequiresManager(t *testing.T) {
	svc := NewDriverService(newStubDriverStore())

	_, err := svc.Create(context.Background(), DriverInput{
		Principal: staff(),
		FirstName: "Juan", LastName: "Pérez", Company: "ACME Transport",
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestDriverCreateValidatesRequiredFields(t *testing.T) {
	svc := NewDriverService(newStubDriverStore())

	_, err := svc.Create(context.Background(), DriverInput{
		Principal: manager(),
		FirstName: "Juan", LastName: "Pérez",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDriverDeactivateHidesFromDefaultList(t *testing.T) {
	store := newStubDriverStore()
	svc := NewDriverService(store)

	driver, err := svc.Create(context.Background(), DriverInput{
		Principal: manager(),
		FirstName: "Juan", LastName: "Pérez", Company: "ACME Transport",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), manager(), driver.ID))

	active, err := svc.List(context.Background(), ListDriversInput{Principal: staff()})
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.List(context.Background(), ListDriversInput{Principal: staff(), IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDriverUpdateUnknownID(t *testing.T) {
	svc := NewDriverService(newStubDriverStore())

	_, err := svc.Update(context.Background(), uuid.New(), DriverInput{
		Principal: manager(),
		FirstName: "Juan", LastName: "Pérez", Company: "ACME Transport",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
