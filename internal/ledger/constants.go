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

package ledger

import (
	"errors"

	dbmodel "github.com/asgardeo/templatizer/internal/system/database/model"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("run not found")

var (
	QueryCreateRunTable = dbmodel.DBQuery{
		ID: "LGQ-RUN-00",
		Query: "CREATE TABLE IF NOT EXISTS TEMPLATIZER_RUN (" +
			"RUN_ID VARCHAR(36) PRIMARY KEY, ROOT_SCOPE_ID VARCHAR(255), TEMPLATE_DIR TEXT, STATUS VARCHAR(16), " +
			"STARTED_AT VARCHAR(40), FINISHED_AT VARCHAR(40), NODES_CREATED INTEGER, CONNECTIONS_CREATED INTEGER, " +
			"ERROR_CODE VARCHAR(16), ERROR_DESCRIPTION TEXT)",
	}
	QueryCreateMappingTable = dbmodel.DBQuery{
		ID: "LGQ-RUN-01",
		Query: "CREATE TABLE IF NOT EXISTS TEMPLATIZER_RUN_MAPPING (" +
			"RUN_ID VARCHAR(36) NOT NULL, SEQ INTEGER NOT NULL, OLD_ID VARCHAR(255), NEW_ID VARCHAR(255), " +
			"PRIMARY KEY (RUN_ID, SEQ))",
	}
	QueryCreateSkippedEdgeTable = dbmodel.DBQuery{
		ID: "LGQ-RUN-02",
		Query: "CREATE TABLE IF NOT EXISTS TEMPLATIZER_RUN_SKIPPED_EDGE (" +
			"RUN_ID VARCHAR(36) NOT NULL, SEQ INTEGER NOT NULL, SCOPE_ID VARCHAR(255), SOURCE_ID VARCHAR(255), " +
			"TARGET_ID VARCHAR(255), PORT_NAME VARCHAR(255), DESCRIPTION TEXT, PRIMARY KEY (RUN_ID, SEQ))",
	}

	QueryInsertRun = dbmodel.DBQuery{
		ID: "LGQ-RUN-03",
		Query: "INSERT INTO TEMPLATIZER_RUN (RUN_ID, ROOT_SCOPE_ID, TEMPLATE_DIR, STATUS, STARTED_AT, FINISHED_AT, " +
			"NODES_CREATED, CONNECTIONS_CREATED, ERROR_CODE, ERROR_DESCRIPTION) " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)",
	}
	QueryInsertMapping = dbmodel.DBQuery{
		ID:    "LGQ-RUN-04",
		Query: "INSERT INTO TEMPLATIZER_RUN_MAPPING (RUN_ID, SEQ, OLD_ID, NEW_ID) VALUES ($1, $2, $3, $4)",
	}
	QueryInsertSkippedEdge = dbmodel.DBQuery{
		ID: "LGQ-RUN-05",
		Query: "INSERT INTO TEMPLATIZER_RUN_SKIPPED_EDGE " +
			"(RUN_ID, SEQ, SCOPE_ID, SOURCE_ID, TARGET_ID, PORT_NAME, DESCRIPTION) " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7)",
	}

	QueryGetRun = dbmodel.DBQuery{
		ID: "LGQ-RUN-06",
		Query: "SELECT RUN_ID, ROOT_SCOPE_ID, TEMPLATE_DIR, STATUS, STARTED_AT, FINISHED_AT, NODES_CREATED, " +
			"CONNECTIONS_CREATED, ERROR_CODE, ERROR_DESCRIPTION FROM TEMPLATIZER_RUN WHERE RUN_ID = $1",
	}
	QueryListMappings = dbmodel.DBQuery{
		ID:    "LGQ-RUN-07",
		Query: "SELECT OLD_ID, NEW_ID FROM TEMPLATIZER_RUN_MAPPING WHERE RUN_ID = $1 ORDER BY SEQ",
	}
	QueryListSkippedEdges = dbmodel.DBQuery{
		ID: "LGQ-RUN-08",
		Query: "SELECT SCOPE_ID, SOURCE_ID, TARGET_ID, PORT_NAME, DESCRIPTION " +
			"FROM TEMPLATIZER_RUN_SKIPPED_EDGE WHERE RUN_ID = $1 ORDER BY SEQ",
	}
)
