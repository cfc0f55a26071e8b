package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/SASASDAa/tgsg-sub000/internal/constants"
)

func main() {
	target := "http://127.0.0.1:8080/"
	if addr := os.Getenv(constants.EnvServerAddr); strings.HasPrefix(addr, ":") {
		target = "http://127.0.0.1" + addr + "/"
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(target)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		os.Exit(1)
	}
	os.Exit(0)
}
