// Command seed loads the sample places and accounts used for local
// development. It writes directly to the collections so it can seed places
// in every moderation state, which the API itself never does.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type seedConfig struct {
	MongoURI        string        `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	MongoDatabase   string        `env:"MONGO_DB" env-default:"parchados"`
	PlaceCollection string        `env:"PLACE_COLLECTION" env-default:"places"`
	UserCollection  string        `env:"USER_COLLECTION" env-default:"users"`
	Timeout         time.Duration `env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`
}

func main() {
	drop := flag.Bool("drop", false, "drop the places and users collections before seeding")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	var cfg seedConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		logger.Fatal("configuración inválida", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("no se pudo conectar a MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	database := client.Database(cfg.MongoDatabase)
	places := database.Collection(cfg.PlaceCollection)
	users := database.Collection(cfg.UserCollection)

	if *drop {
		if err := places.Drop(ctx); err != nil {
			logger.Fatal("no se pudo vaciar la colección de lugares", zap.Error(err))
		}
		if err := users.Drop(ctx); err != nil {
			logger.Fatal("no se pudo vaciar la colección de usuarios", zap.Error(err))
		}
	}

	now := time.Now().UTC()
	placeDocs := []any{
		placeDoc("Restaurante El paisa", "El mejor restaurante paisa", "Cra 12 # 12 - 12",
			"ARMENIA", 4.535000, -75.676879, "RESTAURANT", "APPROVED", "+57 322 555 1212", "",
			[]string{"https://picsum.photos/seed/paisa1/600/400", "https://picsum.photos/seed/paisa2/400/300"},
			now.Add(-72*time.Hour)),
		placeDoc("Bar test 1", "Un bar test", "Calle 12 # 12 - 12",
			"ARMENIA", 4.51400, -75.676568, "BAR", "PENDING", "+57 311 987 2020", "carlosf",
			[]string{"https://picsum.photos/seed/bar1/600/400"},
			now.Add(-48*time.Hour)),
		placeDoc("Hotel de prueba", "Elige este hotel para escapadas rápidas", "Calle 52 # 10 - 44",
			"PEREIRA", 4.8124, -75.6985, "HOTEL", "APPROVED", "+57 606 744 3322", "carlosf",
			[]string{"https://picsum.photos/seed/hotel1/600/400"},
			now.Add(-24*time.Hour)),
	}
	if _, err := places.InsertMany(ctx, placeDocs); err != nil {
		logger.Fatal("no se pudieron insertar los lugares", zap.Error(err))
	}

	userDocs := []any{
		userDoc("Admin", "admin", "ADMIN", "ARMENIA", "admin@email.com", "12345678", now),
		userDoc("Carlos", "carlosf", "USER", "ARMENIA", "carlos@email.com", "12345678", now),
	}
	if _, err := users.InsertMany(ctx, userDocs); err != nil {
		logger.Fatal("no se pudieron insertar los usuarios", zap.Error(err))
	}

	logger.Info("datos de ejemplo cargados",
		zap.Int("places", len(placeDocs)),
		zap.Int("users", len(userDocs)))
}

func placeDoc(title, description, address, city string, lat, lng float64, placeType, status, phone, createdBy string, images []string, createdAt time.Time) bson.M {
	doc := bson.M{
		"_id":         primitive.NewObjectID(),
		"title":       title,
		"description": description,
		"address":     address,
		"city":        city,
		"latitude":    lat,
		"longitude":   lng,
		"images":      images,
		"phoneNumber": phone,
		"type":        placeType,
		"schedules": []bson.M{
			{"day": "MONDAY", "open": "08:00", "close": "18:00"},
			{"day": "SATURDAY", "open": "10:00", "close": "22:00"},
		},
		"createdAt": createdAt,
		"status":    status,
	}
	if createdBy != "" {
		doc["createdByUserId"] = createdBy
	}
	return doc
}

func userDoc(name, username, role, city, email, password string, createdAt time.Time) bson.M {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return bson.M{
		"_id":            primitive.NewObjectID(),
		"name":           name,
		"username":       username,
		"role":           role,
		"city":           city,
		"email":          email,
		"credentialHash": string(hash),
		"createdAt":      createdAt,
	}
}
