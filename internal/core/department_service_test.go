package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDepartmentAndGetBack(t *testing.T) {
	r := newTestRegistry(t, DefaultPolicy())

	dep, err := r.Departments.Create("Cardiology")
	require.NoError(t, err)
	assert.NotEmpty(t, dep.ID)
	assert.Equal(t, "Cardiology", dep.Name)

	got, err := r.Departments.ByID(dep.ID)
	require.NoError(t, err)
	assert.Equal(t, dep, got)
}

func TestCreateDepartmentRejectsEmptyName(t *testing.T) {
	r := newTestRegistry(t, DefaultPolicy())

	_, err := r.Departments.Create("   ")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidPayload, CodeOf(err))
}

func TestDepartmentNameIsNotUnique(t *testing.T) {
	r := newTestRegistry(t, DefaultPolicy())

	a, err := r.Departments.Create("Cardiology")
	require.NoError(t, err)
	b, err := r.Departments.Create("Cardiology")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestListDepartmentsEmptyPolicy(t *testing.T) {
	t.Run("strict policy returns NotFound", func(t *testing.T) {
		r := newTestRegistry(t, Policy{EmptyResultIsError: true})
		_, err := r.Departments.All()
		require.Error(t, err)
		assert.Equal(t, CodeNotFound, CodeOf(err))
	})

	t.Run("lenient policy returns empty collection", func(t *testing.T) {
		r := newTestRegistry(t, Policy{EmptyResultIsError: false})
		deps, err := r.Departments.All()
		require.NoError(t, err)
		assert.Empty(t, deps)
	})
}

func TestListDepartmentsAfterOneInsert(t *testing.T) {
	r := newTestRegistry(t, DefaultPolicy())

	dep, err := r.Departments.Create("Neurology")
	require.NoError(t, err)

	deps, err := r.Departments.All()
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, *dep, deps[0])
}

func TestSearchDepartmentsByName(t *testing.T) {
	r := newTestRegistry(t, DefaultPolicy())

	_, err := r.Departments.Create("Cardiology")
	require.NoError(t, err)
	_, err = r.Departments.Create("Pediatric Cardiology")
	require.NoError(t, err)
	_, err = r.Departments.Create("Neurology")
	require.NoError(t, err)

	matched, err := r.Departments.SearchByName("cardio")
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	_, err = r.Departments.SearchByName("dermatology")
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestDeleteDepartment(t *testing.T) {
	r := newTestRegistry(t, DefaultPolicy())

	dep, err := r.Departments.Create("Oncology")
	require.NoError(t, err)

	msg, err := r.Departments.Delete(dep.ID)
	require.NoError(t, err)
	assert.Contains(t, msg, dep.ID)

	_, err = r.Departments.ByID(dep.ID)
	assert.Equal(t, CodeNotFound, CodeOf(err))

	// Repeated deletion reports NotFound rather than succeeding silently.
	_, err = r.Departments.Delete(dep.ID)
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestDeleteDepartmentLeavesDoctorsDangling(t *testing.T) {
	r := newTestRegistry(t, DefaultPolicy())

	dep, err := r.Departments.Create("Radiology")
	require.NoError(t, err)

	doc, err := r.Doctors.Create(asCaller("owner-1"), CreateDoctorRequest{
		Name:         "Dr. Gray",
		DepartmentID: dep.ID,
		Image:        "gray.png",
	})
	require.NoError(t, err)

	_, err = r.Departments.Delete(dep.ID)
	require.NoError(t, err)

	// No cascade: the doctor survives with a dangling department reference.
	got, err := r.Doctors.ByID(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, dep.ID, got.DepartmentID)
}
