package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var commonUsernames = []string{
	"admin", "user", "test", "demo", "guest", "root", "administrator",
	"admin123", "user123", "test123", "demo123", "guest123",
}

var commonPasswords = []string{
	"admin", "password", "123456", "admin123", "password123", "test123",
	"demo123", "guest123", "root", "administrator", "user", "test",
	"123456789", "qwerty", "abc123", "letmein", "welcome",
}

var validCredentials = map[string]string{
	"admin": "admin123",
	"user":  "password123",
	"test":  "test123",
	"demo":  "demo123",
	"guest": "guest123",
}

func newBruteforceCmd() *cobra.Command {
	var (
		target string
		delay  time.Duration
		rounds int
	)

	cmd := &cobra.Command{
		Use:   "bruteforce",
		Short: "Run a brute-force attack simulation against the credential service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBruteforce(target, delay, rounds)
		},
	}

	cmd.Flags().StringVar(&target, "target", "http://localhost:8080", "credential service base URL")
	cmd.Flags().DurationVar(&delay, "delay", 500*time.Millisecond, "pause between attempts")
	cmd.Flags().IntVar(&rounds, "random-rounds", 20, "number of random-combination attempts in phase 3")
	return cmd
}

func runBruteforce(target string, delay time.Duration, rounds int) error {
	// Redirects are not followed: success is a Location pointing at the
	// dashboard.
	client := &http.Client{
		Timeout: 10 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	fmt.Println("Starting brute force attack simulation")
	fmt.Println(strings.Repeat("=", 50))

	var successes [][2]string
	attempt := func(username, password string) {
		ok, err := tryLogin(client, target, username, password)
		stamp := time.Now().Format("15:04:05")
		switch {
		case err != nil:
			fmt.Printf("[%s] %s:%s -> ERROR: %v\n", stamp, username, password, err)
		case ok:
			fmt.Printf("[%s] %s:%s -> SUCCESS\n", stamp, username, password)
			successes = append(successes, [2]string{username, password})
		default:
			fmt.Printf("[%s] %s:%s -> FAILED\n", stamp, username, password)
		}
		time.Sleep(delay)
	}

	fmt.Println("\nPhase 1: Common credentials")
	for _, username := range commonUsernames {
		for _, password := range commonPasswords {
			attempt(username, password)
		}
	}

	fmt.Println("\nPhase 2: Valid credentials, repeated")
	for username, password := range validCredentials {
		for i := 0; i < 3; i++ {
			attempt(username, password)
		}
	}

	fmt.Println("\nPhase 3: Random combinations")
	for i := 0; i < rounds; i++ {
		attempt(
			commonUsernames[rand.Intn(len(commonUsernames))],
			commonPasswords[rand.Intn(len(commonPasswords))],
		)
	}

	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Done: %d successful logins\n", len(successes))
	return nil
}

func tryLogin(client *http.Client, target, username, password string) (bool, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	resp, err := client.PostForm(target+"/login", form)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	location := resp.Header.Get("Location")
	return strings.Contains(location, "dashboard"), nil
}
