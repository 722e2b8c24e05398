package metrics

import (
	"time"
)

type RedisOperation string

const (
	RedisOpGet    RedisOperation = "get"
	RedisOpSet    RedisOperation = "set"
	RedisOpDel    RedisOperation = "del"
	RedisOpExists RedisOperation = "exists"
)

// RecordCacheLookup учитывает попадание или промах по префиксу ключа
func RecordCacheLookup(service, keyPrefix string, hit bool) {
	if hit {
		RedisCacheHits.WithLabelValues(service, keyPrefix).Inc()
		return
	}
	RedisCacheMisses.WithLabelValues(service, keyPrefix).Inc()
}

func RecordRedisError(service string, op RedisOperation) {
	RedisErrors.WithLabelValues(service, string(op)).Inc()
}

// ObserveKafkaProduce фиксирует результат отправки, начатой в start
func ObserveKafkaProduce(service, topic string, start time.Time, err error) {
	if err != nil {
		KafkaErrors.WithLabelValues(service, topic, "produce").Inc()
		return
	}
	KafkaMessagesProduced.WithLabelValues(service, topic).Inc()
	KafkaProduceDuration.WithLabelValues(service, topic).Observe(time.Since(start).Seconds())
}

func RecordLogin(success bool) {
	status := "failed"
	if success {
		status = "success"
	}
	MemberLogins.WithLabelValues(status).Inc()
}
