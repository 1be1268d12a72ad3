package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesResolvePerMode(t *testing.T) {
	teacher := Teacher{
		ID:         "t-1",
		SubjectIDs: []string{"math"},
		CourseIDs:  []string{"algo"},
	}

	school := SubjectCapability(teacher)
	assert.True(t, school.CanTeach("math"))
	assert.False(t, school.CanTeach("algo"))

	college := CourseCapability(teacher)
	assert.True(t, college.CanTeach("algo"))
	assert.False(t, college.CanTeach("math"))
}

func TestCapabilitiesEmptyDeclarations(t *testing.T) {
	teacher := Teacher{ID: "t-1"}

	assert.False(t, SubjectCapability(teacher).CanTeach("math"))
	assert.False(t, CourseCapability(teacher).CanTeach("algo"))
}
