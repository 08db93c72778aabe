package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tasknest/task-tracker-api/internal/models"
)

// StatusHandlerTestSuite defines the test suite for StatusHandler
type StatusHandlerTestSuite struct {
	baseSuite
	adminToken  string
	memberToken string
}

func (suite *StatusHandlerTestSuite) SetupTest() {
	suite.baseSuite.SetupTest()

	admin := suite.createUser("Alice Admin", "alice@example.com", true)
	member := suite.createUser("Bob Member", "bob@example.com", false)
	suite.adminToken = suite.tokenFor(admin)
	suite.memberToken = suite.tokenFor(member)
}

func (suite *StatusHandlerTestSuite) TestCreateStatus() {
	w := suite.do(http.MethodPost, "/api/status", map[string]any{
		"code": "IN_REVIEW",
		"name": "In Review",
	}, suite.adminToken)

	suite.Equal(http.StatusCreated, w.Code)

	var status models.StatusMaster
	suite.Require().NoError(suite.db.Where("code = ?", "IN_REVIEW").First(&status).Error)
	suite.True(status.Active)
}

func (suite *StatusHandlerTestSuite) TestCreateStatusDuplicateCode() {
	suite.createStatus("IN_REVIEW", "In Review")

	w := suite.do(http.MethodPost, "/api/status", map[string]any{
		"code": "IN_REVIEW",
		"name": "Second Review",
	}, suite.adminToken)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *StatusHandlerTestSuite) TestCreateStatusRequiresAdmin() {
	w := suite.do(http.MethodPost, "/api/status", map[string]any{
		"code": "IN_REVIEW",
		"name": "In Review",
	}, suite.memberToken)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *StatusHandlerTestSuite) TestListAndGetStatuses() {
	suite.createStatus("TO_DO", "To Do")
	suite.createStatus("DONE", "Done")

	w := suite.do(http.MethodGet, "/api/status", nil, suite.memberToken)
	suite.Equal(http.StatusOK, w.Code)
	body := suite.parseBody(w)
	suite.Len(body["statuses"].([]any), 2)

	w = suite.do(http.MethodGet, "/api/status/DONE", nil, suite.memberToken)
	suite.Equal(http.StatusOK, w.Code)
	body = suite.parseBody(w)
	status := body["status"].(map[string]any)
	suite.Equal("Done", status["name"])

	w = suite.do(http.MethodGet, "/api/status/MISSING", nil, suite.memberToken)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *StatusHandlerTestSuite) TestGetStatusByNumericID() {
	created := suite.createStatus("TO_DO", "To Do")

	w := suite.do(http.MethodGet, "/api/status/1", nil, suite.memberToken)
	suite.Equal(http.StatusOK, w.Code)
	body := suite.parseBody(w)
	status := body["status"].(map[string]any)
	suite.Equal(created.Code, status["code"])
}

func (suite *StatusHandlerTestSuite) TestUpdateStatusReplaces() {
	suite.createStatus("TO_DO", "To Do")

	w := suite.do(http.MethodPut, "/api/status/TO_DO", map[string]any{
		"code": "BACKLOG",
		"name": "Backlog",
	}, suite.adminToken)

	suite.Equal(http.StatusOK, w.Code)

	var status models.StatusMaster
	suite.Require().NoError(suite.db.Where("code = ?", "BACKLOG").First(&status).Error)
	suite.Equal("Backlog", status.Name)
	suite.True(status.Active)
}

func (suite *StatusHandlerTestSuite) TestUpdateStatusRequiresCodeAndName() {
	suite.createStatus("TO_DO", "To Do")

	w := suite.do(http.MethodPut, "/api/status/TO_DO", map[string]any{
		"code": "BACKLOG",
	}, suite.adminToken)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *StatusHandlerTestSuite) TestUpdateStatusRequiresAdmin() {
	suite.createStatus("TO_DO", "To Do")

	w := suite.do(http.MethodPut, "/api/status/TO_DO", map[string]any{
		"code": "TO_DO",
		"name": "Backlog",
	}, suite.memberToken)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *StatusHandlerTestSuite) TestPatchStatus() {
	suite.createStatus("TO_DO", "To Do")

	w := suite.do(http.MethodPatch, "/api/status/TO_DO", map[string]any{
		"name": "Backlog",
	}, suite.adminToken)

	suite.Equal(http.StatusOK, w.Code)

	var status models.StatusMaster
	suite.Require().NoError(suite.db.Where("code = ?", "TO_DO").First(&status).Error)
	suite.Equal("Backlog", status.Name)
}

func (suite *StatusHandlerTestSuite) TestUpdateStatusRenameToTakenCode() {
	suite.createStatus("TO_DO", "To Do")
	suite.createStatus("DONE", "Done")

	w := suite.do(http.MethodPatch, "/api/status/TO_DO", map[string]any{
		"code": "DONE",
	}, suite.adminToken)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *StatusHandlerTestSuite) TestDeletedStatusRejectedForNewTasks() {
	suite.createStatus("TO_DO", "To Do")
	suite.createStatus("ON_HOLD", "On Hold")

	w := suite.do(http.MethodDelete, "/api/status/ON_HOLD", nil, suite.adminToken)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPost, "/api/tasks", map[string]any{
		"name":   "Ship report",
		"status": "ON_HOLD",
	}, suite.adminToken)
	suite.Equal(http.StatusBadRequest, w.Code)

	// The code is free to register again after deletion.
	w = suite.do(http.MethodPost, "/api/status", map[string]any{
		"code": "ON_HOLD",
		"name": "On Hold",
	}, suite.adminToken)
	suite.Equal(http.StatusCreated, w.Code)
}

func TestStatusHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(StatusHandlerTestSuite))
}
