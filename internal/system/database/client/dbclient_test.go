/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package client

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/templatizer/internal/system/database/model"
)

type DBClientTestSuite struct {
	suite.Suite
	mockDB   *sql.DB
	mock     sqlmock.Sqlmock
	dbClient DBClientInterface
}

func TestDBClientSuite(t *testing.T) {
	suite.Run(t, new(DBClientTestSuite))
}

func (suite *DBClientTestSuite) SetupTest() {
	var err error
	suite.mockDB, suite.mock, err = sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		suite.T().Fatalf("Failed to create mock database: %v", err)
	}
	suite.dbClient = NewDBClient(model.NewDB(suite.mockDB), model.DBTypeSQLite)
}

func (suite *DBClientTestSuite) TearDownTest() {
	if err := suite.mock.ExpectationsWereMet(); err != nil {
		suite.T().Fatalf("There were unfulfilled expectations: %v", err)
	}
}

func (suite *DBClientTestSuite) TestQuerySuccess() {
	query := model.DBQuery{ID: "q1", Query: "SELECT RUN_ID, STATUS FROM RUN WHERE RUN_ID = $1"}
	rows := sqlmock.NewRows([]string{"RUN_ID", "STATUS"}).
		AddRow("r1", "COMPLETED").
		AddRow("r2", "FAILED")
	suite.mock.ExpectQuery(query.Query).WithArgs("r1").WillReturnRows(rows)

	results, err := suite.dbClient.Query(query, "r1")

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 2)
	assert.Equal(suite.T(), "r1", results[0]["run_id"])
	assert.Equal(suite.T(), "FAILED", results[1]["status"])
}

func (suite *DBClientTestSuite) TestQueryReturnsTextAsString() {
	query := model.DBQuery{ID: "q6", Query: "SELECT OLD_ID, NEW_ID, POSITION FROM MAPPING"}
	rows := sqlmock.NewRows([]string{"OLD_ID", "NEW_ID", "POSITION"}).
		AddRow([]byte("proc-old"), "proc-new", int64(3))
	suite.mock.ExpectQuery(query.Query).WillReturnRows(rows)

	results, err := suite.dbClient.Query(query)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 1)
	assert.Equal(suite.T(), "proc-old", results[0]["old_id"])
	assert.Equal(suite.T(), "proc-new", results[0]["new_id"])
	assert.Equal(suite.T(), int64(3), results[0]["position"])
}

func (suite *DBClientTestSuite) TestQueryUsesDialectVariant() {
	query := model.DBQuery{ID: "q2", Query: "SELECT 1", SQLiteQuery: "SELECT 2"}
	suite.mock.ExpectQuery("SELECT 2").WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow(2))

	results, err := suite.dbClient.Query(query)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 1)
}

func (suite *DBClientTestSuite) TestQueryError() {
	query := model.DBQuery{ID: "q3", Query: "SELECT broken"}
	suite.mock.ExpectQuery(query.Query).WillReturnError(errors.New("syntax error"))

	results, err := suite.dbClient.Query(query)
	assert.EqualError(suite.T(), err, "syntax error")
	assert.Nil(suite.T(), results)
}

func (suite *DBClientTestSuite) TestExecute() {
	query := model.DBQuery{ID: "q4", Query: "DELETE FROM RUN WHERE RUN_ID = $1"}
	suite.mock.ExpectExec(query.Query).WithArgs("r1").WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := suite.dbClient.Execute(query, "r1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), affected)
}

func (suite *DBClientTestSuite) TestTransaction() {
	query := model.DBQuery{ID: "q5", Query: "INSERT INTO RUN (RUN_ID) VALUES ($1)"}
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(query.Query).WithArgs("r1").WillReturnResult(sqlmock.NewResult(1, 1))
	suite.mock.ExpectCommit()

	tx, err := suite.dbClient.BeginTx()
	assert.NoError(suite.T(), err)
	affected, err := tx.Execute(query, "r1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), affected)
	assert.NoError(suite.T(), tx.Commit())
}

func (suite *DBClientTestSuite) TestClose() {
	suite.mock.ExpectClose()
	assert.NoError(suite.T(), suite.dbClient.Close())
}
