package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	routeLabels = []string{"service", "method", "path"}
	topicLabels = []string{"service", "topic"}
	keyLabels   = []string{"service", "key_prefix"}
)

// HTTP. path берется из шаблона маршрута gin, а не из URL, чтобы id не раздували кардинальность
var (
	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route and status",
	}, append(routeLabels, "status"))

	HttpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.ExponentialBuckets(0.001, 2.5, 11),
	}, routeLabels)

	HttpRequestsInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Requests currently being served",
	}, []string{"service"})
)

// Redis: кеш категорий и черный список токенов
var (
	RedisCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Cache lookups served from Redis",
	}, keyLabels)

	RedisCacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Cache lookups that fell through to the database",
	}, keyLabels)

	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Failed Redis commands by operation",
	}, []string{"service", "operation"})
)

// Kafka: события изменения товаров
var (
	KafkaMessagesProduced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Product events written to Kafka",
	}, topicLabels)

	KafkaProduceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Time to write one product event",
		Buckets: prometheus.DefBuckets,
	}, topicLabels)

	KafkaErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Failed Kafka writes",
	}, append(topicLabels, "operation"))
)

// Бизнес-метрики сервиса подарков
var (
	// DomainErrors ответы с доменной ошибкой, по коду
	DomainErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gift_domain_errors_total",
		Help: "Requests rejected with a domain error code",
	}, []string{"code"})

	MemberRegistrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gift_member_registrations_total",
		Help: "Registered members",
	})

	MemberLogins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gift_member_logins_total",
		Help: "Login attempts by outcome",
	}, []string{"status"}) // success, failed

	WishlistOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gift_wishlist_operations_total",
		Help: "Wishlist changes",
	}, []string{"operation"}) // add, remove

	ProductsChanged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gift_products_changed_total",
		Help: "Committed product changes by event type",
	}, []string{"event"})
)
