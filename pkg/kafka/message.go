package kafka

type Message []byte
