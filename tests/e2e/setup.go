//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"flight-booking/cmd/bootstrap"
	"flight-booking/cmd/bootstrap/components"
	"flight-booking/internal/infra/db"
	"flight-booking/internal/infra/gateway"
	"flight-booking/internal/pkg/clock"
	"flight-booking/internal/pkg/config"
	"flight-booking/internal/usecase/commands"
	"flight-booking/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	testUser     = "test"
	testPassword = "testpass"
)

// sharedContainer は go test プロセス内で一度だけ起動し、全スイートで共有する
type sharedContainer struct {
	once      sync.Once
	container testcontainers.Container
	err       error
}

var (
	postgresContainer sharedContainer
	redisContainer    sharedContainer
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

type e2eApp struct {
	Router *gin.Engine
	Config config.Config
	Clock  *clock.MockClock
	Expiry commands.ExpiryCommands
	app    *fx.App
}

// ------------------------------------------------------------
// 各テストプロセス用にセットアップ
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) (*pgxpool.Pool, *e2eApp) {
	postgresInfo, redisInfo := startContainers(t)

	pool, dbConfig := prepareDatabase(t, postgresInfo)

	built := buildE2EApp(pool, dbConfig, redisInfo)
	require.NotNil(t, built.Router, "Routerのセットアップに失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := built.app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})

	slog.Info("E2E環境の準備が完了しました",
		"postgres", net.JoinHostPort(postgresInfo.Host, postgresInfo.Port.Port()),
		"redis", net.JoinHostPort(redisInfo.Host, redisInfo.Port.Port()))

	return pool, built
}

// ------------------------------------------------------------
// コンテナ起動関数
// ------------------------------------------------------------
func startContainers(t *testing.T) (ContainerInfo, ContainerInfo) {
	gin.SetMode(gin.TestMode)

	postgresInfo := postgresContainer.start(t, "PostgreSQL", postgresRequest(), "5432/tcp")
	redisInfo := redisContainer.start(t, "Redis", redisRequest(), "6379/tcp")
	return postgresInfo, redisInfo
}

func (sc *sharedContainer) start(t *testing.T, label string, req testcontainers.ContainerRequest, port string) ContainerInfo {
	sc.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		// 後片付けは ryuk に任せる
		sc.container, sc.err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
	})
	require.NoError(t, sc.err, label+"コンテナの起動に失敗")

	info, err := containerAddress(sc.container, port)
	require.NoError(t, err, label+"コンテナ情報の取得に失敗")
	return info
}

// postgresRequest はデータを tmpfs に置き、耐久性関連の設定を切った PostgreSQL 17
func postgresRequest() testcontainers.ContainerRequest {
	settings := map[string]string{
		"fsync":              "off",
		"full_page_writes":   "off",
		"synchronous_commit": "off",
		"shared_buffers":     "256MB",
		"max_connections":    "300",
		"log_statement":      "none",
		// 同時確定テストでのロック待ちを確認したいときは on にする
		"log_lock_waits": "off",
	}
	cmd := []string{"postgres"}
	for _, k := range slices.Sorted(maps.Keys(settings)) {
		cmd = append(cmd, "-c", k+"="+settings[k])
	}

	return testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
			"POSTGRES_DB":       "postgres",
		},
		Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
		Cmd:   cmd,
		WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
			return postgresDSN(host, port.Port(), "postgres")
		}).WithStartupTimeout(time.Minute),
		Labels: map[string]string{"purpose": "flight-booking-e2e"},
	}
}

func redisRequest() testcontainers.ContainerRequest {
	return testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		Labels:       map[string]string{"purpose": "flight-booking-e2e"},
	}
}

func postgresDSN(host, port, database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		testUser, testPassword, net.JoinHostPort(host, port), database)
}

func containerAddress(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mapped}, nil
}

// ------------------------------------------------------------
// データベース準備関数
// ------------------------------------------------------------
func prepareDatabase(t *testing.T, postgresInfo ContainerInfo) (*pgxpool.Pool, config.DBConfig) {
	// テストプロセスごとに専用のデータベースを作る
	dbName := "flights_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	adminDSN := postgresDSN(postgresInfo.Host, postgresInfo.Port.Port(), "postgres")

	require.NoError(t, execAdmin(adminDSN, "CREATE DATABASE "+dbName), "テスト用データベースの作成に失敗")
	t.Cleanup(func() {
		if err := execAdmin(adminDSN, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", dbName, "error", err.Error())
		}
	})

	dbConfig := config.DBConfig{
		Host:     postgresInfo.Host,
		Port:     postgresInfo.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 30,
		MinConns: 2,
	}

	pool, _, err := db.Connect(dbConfig)
	require.NoError(t, err, "データベース接続に失敗")

	require.NoError(t, applyMigrations(t, pool), "データベースマイグレーションに失敗")
	require.NoError(t, dbtest.SeedReferenceData(pool), "参照データの投入に失敗")

	return pool, dbConfig
}

// execAdmin は postgres データベースに接続して DDL を実行する。
// 並列スイートが同時に CREATE DATABASE するとテンプレートのロック競合で失敗するので再試行する
func execAdmin(dsn, stmt string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	backoff := 200 * time.Millisecond
	for attempt := 1; ; attempt++ {
		_, err = conn.Exec(ctx, stmt)
		if err == nil || attempt == 5 {
			return err
		}
		slog.Warn("管理DDLを再試行します", "attempt", attempt, "error", err.Error())
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

// migrations/ 配下の SQL をファイル名順に適用する（atlas.sum は対象外）
func applyMigrations(t *testing.T, pool *pgxpool.Pool) error {
	t.Helper()

	dir, err := findMigrationsDir()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations found in %s", dir)
	}
	slices.Sort(files)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	for _, file := range files {
		sqlContent, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}
		if _, err := pool.Exec(ctx, string(sqlContent)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
		slog.Info("マイグレーション実行完了", "file", filepath.Base(file))
	}
	return nil
}

// go test はパッケージディレクトリで実行されるため、go.mod まで遡って探す
func findMigrationsDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "migrations"), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found above working directory")
		}
		dir = parent
	}
}

// ------------------------------------------------------------
// E2Eテスト用アプリケーション構築関数
// 決済ゲートウェイはテストモード、通知は同期配送
// ------------------------------------------------------------
func buildE2EApp(pool *pgxpool.Pool, dbConfig config.DBConfig, redisInfo ContainerInfo) *e2eApp {
	built := &e2eApp{
		Clock: clock.NewMockClock(time.Now().UTC().Truncate(time.Second)),
	}

	testDBModule := fx.Module("testdb",
		fx.Provide(func() *pgxpool.Pool { return pool }),
	)

	testConfigModule := fx.Module("testconfig",
		fx.Provide(
			func() config.Config {
				return createTestConfig(dbConfig, redisInfo)
			},
			func() clock.Clock { return built.Clock },
		),
	)

	app := fx.New(
		testDBModule,
		testConfigModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.InfraModule,
		components.NotifyModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&built.Router, &built.Config, &built.Expiry),

		// ログを無効にして起動
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start fx app: %v", err))
	}

	if built.Router == nil {
		panic("fxアプリケーションの起動に失敗しました")
	}

	built.app = app
	return built
}

func createTestConfig(dbConfig config.DBConfig, redisInfo ContainerInfo) config.Config {
	testConfig := config.NewTestConfig()
	testConfig.DB = dbConfig
	// 並列スイート間で共有するが、キーはフライトIDごとなので衝突しない
	testConfig.Redis = config.RedisConfig{
		Addr:      net.JoinHostPort(redisInfo.Host, redisInfo.Port.Port()),
		FlightTTL: time.Minute,
	}
	return testConfig
}

// ------------------------------------------------------------
// E2Eテストスイートで共通のセットアップ
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool // 各テストで使う DB 接続
	Config config.Config
	Clock  *clock.MockClock
	Expiry commands.ExpiryCommands
	Signer *gateway.SignatureVerifier
}

func (s *SharedSuite) SetupSharedSuite(t *testing.T) {
	db, built := setupE2EEnvironment(t)
	s.DB = db
	s.Router = built.Router
	s.Config = built.Config
	s.Clock = built.Clock
	s.Expiry = built.Expiry
	s.Signer = gateway.NewSignatureVerifier(s.Config.Gateway.WebhookSecret, s.Config.Gateway.SignatureTolerance)
	require.NotNil(t, db, "DBのセットアップに失敗")
	require.NotEmpty(t, s.Config, "Configの取得に失敗")
	require.NotNil(t, s.Router, "Routerのセットアップに失敗")
}

func (s *SharedSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "データベースの初期化に失敗")
	s.Clock.Set(time.Now().UTC().Truncate(time.Second))
}
