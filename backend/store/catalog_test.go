package store

import (
	"testing"

	"cosmolearn/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCourse(t *testing.T) (*CourseCatalog, uint) {
	t.Helper()
	db := testDB(t)

	course := models.Course{
		Title: "Deep Space",
		Lessons: []models.Lesson{
			{Title: "Nebulae", SequenceOrder: 1},
			{Title: "Galaxies", SequenceOrder: 0, Quiz: &models.LessonQuiz{
				Question:     "What shape is the Milky Way?",
				Options:      `["Spiral","Elliptical","Irregular"]`,
				CorrectIndex: 0,
			}},
		},
	}
	require.NoError(t, db.Create(&course).Error)
	return NewCourseCatalog(db), course.ID
}

func TestCourseLessonsAreOrderedBySequence(t *testing.T) {
	catalog, courseID := seedCourse(t)

	course, err := catalog.Course(courseID)
	require.NoError(t, err)

	require.Len(t, course.Lessons, 2)
	assert.Equal(t, "Galaxies", course.Lessons[0].Title)
	assert.Equal(t, "Nebulae", course.Lessons[1].Title)
}

func TestCourseDecodesQuizOptions(t *testing.T) {
	catalog, courseID := seedCourse(t)

	course, err := catalog.Course(courseID)
	require.NoError(t, err)

	quiz := course.Lessons[0].Quiz
	require.NotNil(t, quiz)
	assert.Equal(t, []string{"Spiral", "Elliptical", "Irregular"}, quiz.Options)
	assert.Equal(t, 0, quiz.CorrectIndex)
	assert.Nil(t, course.Lessons[1].Quiz)
}

func TestCourseSummaries(t *testing.T) {
	catalog, courseID := seedCourse(t)

	infos := catalog.CourseSummaries()

	require.Len(t, infos, 1)
	assert.Equal(t, CourseKey(courseID), infos[0].ID)
	assert.Equal(t, 2, infos[0].LessonCount)
}

func TestCourseNotFound(t *testing.T) {
	catalog, _ := seedCourse(t)

	_, err := catalog.Course(999)
	assert.Error(t, err)
}
