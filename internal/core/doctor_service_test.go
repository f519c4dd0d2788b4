package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDoctorAndGetBack(t *testing.T) {
	r := newTestRegistry(t, DefaultPolicy())

	doc, err := r.Doctors.Create(asCaller("P1"), CreateDoctorRequest{
		Name:         "Dr. Lee",
		DepartmentID: "dep-1",
		Image:        "img.png",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "P1", doc.Owner)
	assert.False(t, doc.Available)

	got, err := r.Doctors.ByID(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestCreateDoctorValidation(t *testing.T) {
	r := newTestRegistry(t, DefaultPolicy())

	cases := []struct {
		name string
		req  CreateDoctorRequest
	}{
		{"missing name", CreateDoctorRequest{DepartmentID: "d", Image: "i"}},
		{"missing department", CreateDoctorRequest{Name: "n", Image: "i"}},
		{"missing image", CreateDoctorRequest{Name: "n", DepartmentID: "d"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Doctors.Create(asCaller("P1"), tc.req)
			assert.Equal(t, CodeInvalidPayload, CodeOf(err))
		})
	}
}

func TestCreateDoctorRequiresCallerIdentity(t *testing.T) {
	r := newTestRegistry(t, DefaultPolicy())

	_, err := r.Doctors.Create(context.Background(), CreateDoctorRequest{
		Name:         "Dr. Lee",
		DepartmentID: "dep-1",
		Image:        "img.png",
	})
	assert.Equal(t, CodeInvalidPayload, CodeOf(err))
}

func TestCreateDoctorUniquePerDepartment(t *testing.T) {
	r := newTestRegistry(t, DefaultPolicy())

	_, err := r.Doctors.Create(asCaller("P1"), CreateDoctorRequest{
		Name:         "Dr. Lee",
		DepartmentID: "dep-1",
		Image:        "img.png",
	})
	require.NoError(t, err)

	// Same (name, department) fails regardless of image or caller.
	_, err = r.Doctors.Create(asCaller("P2"), CreateDoctorRequest{
		Name:         "Dr. Lee",
		DepartmentID: "dep-1",
		Image:        "other.png",
	})
	assert.Equal(t, CodeInvalidPayload, CodeOf(err))

	// Same name in a different department is fine.
	_, err = r.Doctors.Create(asCaller("P2"), CreateDoctorRequest{
		Name:         "Dr. Lee",
		DepartmentID: "dep-2",
		Image:        "img.png",
	})
	assert.NoError(t, err)
}

func TestDoctorByOwner(t *testing.T) {
	r := newTestRegistry(t, DefaultPolicy())

	_, err := r.Doctors.ByOwner(asCaller("P1"))
	assert.Equal(t, CodeNotFound, CodeOf(err))

	created, err := r.Doctors.Create(asCaller("P1"), CreateDoctorRequest{
		Name:         "Dr. Lee",
		DepartmentID: "dep-1",
		Image:        "img.png",
	})
	require.NoError(t, err)

	got, err := r.Doctors.ByOwner(asCaller("P1"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = r.Doctors.ByOwner(asCaller("P2"))
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestDoctorByOwnerReturnsFirstMatch(t *testing.T) {
	r := newTestRegistry(t, DefaultPolicy())

	first, err := r.Doctors.Create(asCaller("P1"), CreateDoctorRequest{
		Name: "Dr. One", DepartmentID: "dep-1", Image: "a.png",
	})
	require.NoError(t, err)
	_, err = r.Doctors.Create(asCaller("P1"), CreateDoctorRequest{
		Name: "Dr. Two", DepartmentID: "dep-1", Image: "b.png",
	})
	require.NoError(t, err)

	got, err := r.Doctors.ByOwner(asCaller("P1"))
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestSearchDoctorsByName(t *testing.T) {
	r := newTestRegistry(t, DefaultPolicy())

	doe, err := r.Doctors.Create(asCaller("P1"), CreateDoctorRequest{
		Name: "John Doe", DepartmentID: "dep-1", Image: "a.png",
	})
	require.NoError(t, err)
	_, err = r.Doctors.Create(asCaller("P1"), CreateDoctorRequest{
		Name: "Jane Roe", DepartmentID: "dep-1", Image: "b.png",
	})
	require.NoError(t, err)

	matched, err := r.Doctors.SearchByName("doe")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, doe.ID, matched[0].ID)
}

func TestUpdateDoctorShallowMerge(t *testing.T) {
	r := newTestRegistry(t, DefaultPolicy())

	doc, err := r.Doctors.Create(asCaller("P1"), CreateDoctorRequest{
		Name: "Dr. Lee", DepartmentID: "dep-1", Image: "img.png",
	})
	require.NoError(t, err)

	updated, err := r.Doctors.Update(doc.ID, UpdateDoctorRequest{
		Image: strPtr("new.png"),
	})
	require.NoError(t, err)

	// Absent fields are preserved; id and owner cannot change.
	assert.Equal(t, doc.ID, updated.ID)
	assert.Equal(t, "P1", updated.Owner)
	assert.Equal(t, "Dr. Lee", updated.Name)
	assert.Equal(t, "dep-1", updated.DepartmentID)
	assert.Equal(t, "new.png", updated.Image)
}

func TestUpdateDoctorNotFound(t *testing.T) {
	r := newTestRegistry(t, DefaultPolicy())

	_, err := r.Doctors.Update("missing", UpdateDoctorRequest{Name: strPtr("x")})
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestUpdateDoctorAvailability(t *testing.T) {
	r := newTestRegistry(t, DefaultPolicy())

	doc, err := r.Doctors.Create(asCaller("P1"), CreateDoctorRequest{
		Name: "Dr. Lee", DepartmentID: "dep-1", Image: "img.png",
	})
	require.NoError(t, err)
	require.False(t, doc.Available)

	updated, err := r.Doctors.UpdateAvailability(doc.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Available)
	assert.Equal(t, "Dr. Lee", updated.Name)

	got, err := r.Doctors.ByID(doc.ID)
	require.NoError(t, err)
	assert.True(t, got.Available)
}

func TestDeleteDoctor(t *testing.T) {
	r := newTestRegistry(t, DefaultPolicy())

	doc, err := r.Doctors.Create(asCaller("P1"), CreateDoctorRequest{
		Name: "Dr. Lee", DepartmentID: "dep-1", Image: "img.png",
	})
	require.NoError(t, err)

	msg, err := r.Doctors.Delete(doc.ID)
	require.NoError(t, err)
	assert.Contains(t, msg, doc.ID)

	_, err = r.Doctors.ByID(doc.ID)
	assert.Equal(t, CodeNotFound, CodeOf(err))

	_, err = r.Doctors.Delete(doc.ID)
	assert.Equal(t, CodeNotFound, CodeOf(err))
}
