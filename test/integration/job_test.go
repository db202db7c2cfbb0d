package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jobhive_backend/test/helpers"
)

func TestCreateJob_RecruiterOnly(t *testing.T) {
	ts := GetTestServer(t)

	recruiterToken, recruiter := helpers.CreateAndLoginRecruiter(t, ts)
	seekerToken, _ := helpers.CreateAndLoginJobseeker(t, ts)

	jobBody := map[string]interface{}{
		"title":       "Senior Go Engineer",
		"description": "Build backend services",
		"location":    "Amsterdam",
		"salary":      95000,
		"jobType":     "full-time",
		"tags":        []string{"go", "backend"},
		"skills":      []string{"go", "postgres"},
	}

	// Соискателю запрещено
	seekerRes, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs", seekerToken, jobBody)
	assert.Equal(t, http.StatusForbidden, seekerRes.StatusCode)

	// Рекрутеру разрешено, владелец берется из токена
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs", recruiterToken, jobBody)
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var created struct {
		Job struct {
			ID       string `json:"id"`
			Status   string `json:"status"`
			PostedBy struct {
				ID string `json:"id"`
			} `json:"postedBy"`
		} `json:"job"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	assert.Equal(t, "open", created.Job.Status, "Новая вакансия открыта по умолчанию")
	assert.Equal(t, recruiter.ID, created.Job.PostedBy.ID)
}

func TestCreateJob_MissingFields(t *testing.T) {
	ts := GetTestServer(t)

	token, _ := helpers.CreateAndLoginRecruiter(t, ts)

	jobBody := map[string]interface{}{
		"description": "no title here",
		"location":    "Remote",
		"salary":      50000,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs", token, jobBody)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	// Отсутствующее поле называется явно
	assert.Contains(t, bodyStr, "title")
}

func TestListJobs_NewestFirst(t *testing.T) {
	ts := GetTestServer(t)

	_, recruiter := helpers.CreateAndLoginRecruiter(t, ts)

	marker := fmt.Sprintf("order%d", time.Now().UnixNano())
	older := helpers.CreateTestJob(t, ts.DB, recruiter.ID, "Older "+marker, "Oslo", []string{marker})
	newer := helpers.CreateTestJob(t, ts.DB, recruiter.ID, "Newer "+marker, "Oslo", []string{marker})

	// Разносим created_at явно, вставки могут попасть в один тик
	ts.DB.Model(older).Update("created_at", time.Now().Add(-time.Hour))
	ts.DB.Model(newer).Update("created_at", time.Now())

	for _, path := range []string{
		"/api/v1/jobs",
		"/api/v1/jobs/search?tags=" + marker,
	} {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		var listed struct {
			Jobs []struct {
				ID string `json:"id"`
			} `json:"jobs"`
		}
		assert.NoError(t, json.Unmarshal([]byte(bodyStr), &listed))

		newerIdx, olderIdx := -1, -1
		for i, job := range listed.Jobs {
			switch job.ID {
			case newer.ID:
				newerIdx = i
			case older.ID:
				olderIdx = i
			}
		}
		assert.GreaterOrEqual(t, newerIdx, 0, "Путь %s: новая вакансия не найдена", path)
		assert.GreaterOrEqual(t, olderIdx, 0, "Путь %s: старая вакансия не найдена", path)
		assert.Less(t, newerIdx, olderIdx, "Путь %s: свежая вакансия должна идти первой", path)
	}
}

func TestSearchJobs(t *testing.T) {
	ts := GetTestServer(t)

	_, recruiter := helpers.CreateAndLoginRecruiter(t, ts)

	marker := fmt.Sprintf("tag%d", time.Now().UnixNano())
	helpers.CreateTestJob(t, ts.DB, recruiter.ID, "Go Developer "+marker, "Amsterdam", []string{marker, "go"})
	helpers.CreateTestJob(t, ts.DB, recruiter.ID, "Python Developer", "Berlin", []string{"python"})

	// Поиск по тегу
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/search?tags="+marker, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, marker)
	assert.NotContains(t, bodyStr, "Python Developer")

	// Поиск по подстроке заголовка без учета регистра
	res2, bodyStr2 := ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/search?title="+marker, "", nil)
	assert.Equal(t, http.StatusOK, res2.StatusCode)
	assert.Contains(t, bodyStr2, marker)
}

func TestUpdateJob_OwnerOnly(t *testing.T) {
	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginRecruiter(t, ts)
	otherToken, _ := helpers.CreateAndLoginRecruiter(t, ts)

	job := helpers.CreateTestJob(t, ts.DB, owner.ID, "Owned Job", "Paris", []string{"go"})

	updateBody := map[string]interface{}{"title": "Updated title"}

	// Чужой рекрутер получает 403
	res, _ := ts.SendRequest(t, http.MethodPut, "/api/v1/jobs/"+job.ID, otherToken, updateBody)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Владелец обновляет успешно
	okRes, okBody := ts.SendRequest(t, http.MethodPut, "/api/v1/jobs/"+job.ID, ownerToken, updateBody)
	assert.Equal(t, http.StatusOK, okRes.StatusCode, "Ответ: "+okBody)
	assert.Contains(t, okBody, "Updated title")
}

func TestDeleteJob_CascadesApplications(t *testing.T) {
	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginRecruiter(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, owner.ID, "Doomed Job", "Madrid", []string{"go"})

	res, _ := ts.SendRequest(t, http.MethodDelete, "/api/v1/jobs/"+job.ID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Вакансии больше нет
	getRes, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/"+job.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, getRes.StatusCode)
}

func TestListJobs_OnlyOpen(t *testing.T) {
	ts := GetTestServer(t)

	_, recruiter := helpers.CreateAndLoginRecruiter(t, ts)

	openMarker := fmt.Sprintf("open%d", time.Now().UnixNano())
	closedMarker := fmt.Sprintf("closed%d", time.Now().UnixNano())

	helpers.CreateTestJob(t, ts.DB, recruiter.ID, openMarker, "Oslo", []string{"go"})
	closedJob := helpers.CreateTestJob(t, ts.DB, recruiter.ID, closedMarker, "Oslo", []string{"go"})
	ts.DB.Model(closedJob).Update("status", "closed")

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/jobs", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, openMarker)
	assert.NotContains(t, bodyStr, closedMarker)
}
