package messaging

import (
	"fmt"
	"log"

	"clinrec-service/internal/app/config"

	"github.com/rabbitmq/amqp091-go"
)

// NewRabbitMQ connects to the broker carrying message-sent events.
func NewRabbitMQ(driverConfig *config.DriverConfig) *amqp091.Connection {
	connectionString := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		driverConfig.RabbitMQ.Username,
		driverConfig.RabbitMQ.Password,
		driverConfig.RabbitMQ.Host,
		driverConfig.RabbitMQ.Port,
	)
	conn, err := amqp091.Dial(connectionString)
	if err != nil {
		log.Fatalf("Failed to connect to the message broker: %s", err.Error())
	}
	log.Println("Successfully connected to the message broker")
	return conn
}
