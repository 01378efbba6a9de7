// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/config"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	"github.com/finance-tracker/pnl/internal/infra/db"
	"github.com/finance-tracker/pnl/internal/infra/dependency"
	"github.com/finance-tracker/pnl/internal/integration/adapters"
	"github.com/finance-tracker/pnl/internal/integration/persistence/model"
	"github.com/finance-tracker/pnl/test/integration/mock"
)

const (
	testJWTSecret     = "test-jwt-secret-key-for-testing-purposes"
	testSyncRateLimit = 3
)

type testContext struct {
	uri          string
	headers      map[string]string
	client       *http.Client
	response     *response
	accessToken  string
	tenants      map[string]uuid.UUID
	tenantID     uuid.UUID
	lastID       string
	lastImportID string
}

type response struct {
	status int
	body   any
}

var (
	serverInit   sync.Once
	testServer   *httptest.Server
	testDB       *mock.Db
	testRedis    *mock.Redis
	testSources  *mock.ApiMock
	testInjector *dependency.Injector
	tokenService = adapters.NewTokenService(testJWTSecret)
)

// InitializeTestSuite starts the shared server and its mocked dependencies.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		startServer()
	})

	ctx.AfterSuite(func() {
		if testServer != nil {
			testServer.Close()
		}
		if testSources != nil {
			testSources.Close()
		}
	})
}

func startServer() {
	serverInit.Do(func() {
		testDB = mock.NewDb(map[string]any{
			"canonical_records":   &model.CanonicalRecordModel{},
			"taxonomy_categories": &model.TaxonomyCategoryModel{},
			"mapping_configs":     &model.MappingConfigModel{},
		})
		testRedis = mock.NewRedis()
		testSources = mock.NewApiServer()
		testSources.Start()

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Server.SyncRateLimit = testSyncRateLimit
		cfg.Server.SyncRateWindow = time.Hour
		cfg.JWT.Secret = testJWTSecret
		cfg.Pipeline.DefaultDataType = string(entity.DataTypeActual)
		cfg.Pipeline.TaxonomySeedFile = ""
		cfg.Pipeline.RollupCacheTTL = time.Minute
		cfg.Sources = config.SourcesConfig{
			SchedulingSystem: config.SourceConfig{
				BaseURL: testSources.GetUrl() + "/" + string(entity.SourceSchedulingSystem),
				APIKey:  "scheduling-key",
				Timeout: 5 * time.Second,
			},
			BankingAggregator: config.SourceConfig{
				BaseURL: testSources.GetUrl() + "/" + string(entity.SourceBankingAggregator),
				APIKey:  "banking-key",
				Timeout: 5 * time.Second,
			},
		}

		testInjector = dependency.NewInjector(cfg, testDB.DbConn, db.NewRedisFromClient(testRedis.Client))
		testServer = httptest.NewServer(testInjector.Router.Setup(cfg.Server.Environment))
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Auth steps
	ctx.Given(`^I am authenticated for tenant "([^"]*)"$`, test.iAmAuthenticatedForTenant)
	ctx.Given(`^I am authenticated with an expired token$`, test.iAmAuthenticatedWithAnExpiredToken)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Source steps
	ctx.Given(`^the "([^"]*)" source returns the records:$`, test.theSourceReturnsTheRecords)
	ctx.Given(`^the "([^"]*)" source responds with status (\d+)$`, test.theSourceRespondsWithStatus)
	ctx.Then(`^the "([^"]*)" source should have received (\d+) requests? for tenant "([^"]*)"$`, test.theSourceShouldHaveReceivedRequestsForTenant)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I upload the file "([^"]*)" with source "([^"]*)" and content:$`, test.iUploadTheFileWithSourceAndContent)
	ctx.When(`^I upload the file "([^"]*)" with source "([^"]*)" and encoding "([^"]*)" and content:$`, test.iUploadTheFileWithSourceEncodingAndContent)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	t.uri = testServer.URL
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.tenants = make(map[string]uuid.UUID)
	t.tenantID = uuid.Nil
	t.lastID = ""
	t.lastImportID = ""

	testSources.Reset()
	testInjector.SyncRateLimiter.Reset()
	if err := testRedis.Clear(); err != nil {
		return err
	}
	return testDB.ClearDB()
}

// tenant resolves a scenario-local alias to a stable tenant id.
func (t *testContext) tenant(alias string) uuid.UUID {
	id, ok := t.tenants[alias]
	if !ok {
		id = uuid.New()
		t.tenants[alias] = id
	}
	return id
}
