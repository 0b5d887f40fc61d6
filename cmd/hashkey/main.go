// hashkey генерирует bcrypt хеш для переменной окружения API_KEY_HASH.
//
// Использование:
//
//	go run ./cmd/hashkey -key "секретный-api-ключ"
//
// Полученный хеш подставляется в API_KEY_HASH, сам ключ передается
// клиентам и отправляется в заголовке X-API-Key.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"tradeinsight/pkg/crypto"
)

func main() {
	key := flag.String("key", "", "API ключ для хеширования")
	flag.Parse()

	if *key == "" {
		flag.Usage()
		os.Exit(2)
	}

	hash, err := crypto.HashKey(*key)
	if err != nil {
		log.Fatalf("Ошибка хеширования ключа: %v", err)
	}

	fmt.Println(hash)
}
