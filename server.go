package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"time"

	"AMALGAM_server/config"
	"AMALGAM_server/errors"
	"AMALGAM_server/global"
	"AMALGAM_server/routes"
	"AMALGAM_server/social"
	"AMALGAM_server/storage"

	redis "github.com/go-redis/redis/v8"
	"github.com/gocql/gocql"
	fiber "github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
)

func init() {
	internalErrorsFile, err := os.OpenFile("internal_errors.txt", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	errors.HandleFatalError(err)

	monitorErrorsFile, err := os.OpenFile("monitor_logs.txt", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	errors.HandleFatalError(err)

	global.InternalLogger = log.New(internalErrorsFile, "", log.LstdFlags)
	global.MonitorLogger = log.New(monitorErrorsFile, "", log.LstdFlags)

	data, err := ioutil.ReadFile("./config.json")
	errors.HandleFatalError(err)

	err = json.Unmarshal(data, &config.Config)
	errors.HandleFatalError(err)

	if config.Config.SessionHours > 0 {
		global.SessionDuration = time.Hour * time.Duration(config.Config.SessionHours)
	}

	global.RedisClient = redis.NewClient(&redis.Options{
		Addr:     config.Config.Redis.Addr,
		Password: config.Config.Redis.Password,
		DB:       config.Config.Redis.DB,
	})

	cluster := gocql.NewCluster(config.Config.Scylla.Host)
	cluster.Keyspace = config.Config.Scylla.Keyspace
	global.Session, err = cluster.CreateSession()
	errors.HandleFatalError(err)
	fmt.Println("ScyllaDB initialized")
	fmt.Printf("Keyspace: %s\n\n", cluster.Keyspace)

	err = global.Session.Query(`
		CREATE TABLE IF NOT EXISTS accounts (
			email text,
			name text,
			password_hash text,
			created timestamp,
			friends set<text>,
			frequests set<text>,
			pendingreq set<text>,
			PRIMARY KEY (email))
		WITH compaction = { 'class' :  'LeveledCompactionStrategy'  };
	`).Exec()

	errors.HandleFatalError(err)

	err = global.Session.Query(`
		CREATE TABLE IF NOT EXISTS accounts_by_name (
			name text,
			email text,
			PRIMARY KEY (name, email))
		WITH compaction = { 'class' :  'LeveledCompactionStrategy'  };
	`).Exec()

	errors.HandleFatalError(err)

	err = global.Session.Query(`
		CREATE TABLE IF NOT EXISTS conversations (
			pair_key text,
			created timestamp,
			PRIMARY KEY (pair_key))
		WITH compaction = { 'class' :  'LeveledCompactionStrategy'  };
	`).Exec()

	errors.HandleFatalError(err)

	err = global.Session.Query(`
		CREATE TABLE IF NOT EXISTS conversation_messages (
			pair_key text,
			message_id timeuuid,
			sender text,
			body text,
			PRIMARY KEY (pair_key, message_id))
		WITH
		CLUSTERING ORDER BY (message_id ASC) AND
		compaction = { 'class' :  'SizeTieredCompactionStrategy'  };
	`).Exec()

	errors.HandleFatalError(err)

	global.Store = storage.NewScyllaStore(global.Session)
	global.Social = social.NewService(global.Store)
}

func main() {

	defer global.Session.Close()

	app := fiber.New(fiber.Config{
		JSONEncoder: jsoniter.Marshal,
		JSONDecoder: jsoniter.Unmarshal,
	})
	defer app.Shutdown()

	routes.SetRoutes(app)

	fmt.Println("Starting server on port: " + config.Config.Port)
	log.Fatal(app.Listen(config.Config.Port))

}
