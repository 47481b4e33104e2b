// Command devtoken prints a signed access token for local testing.
//
//  go run ./cmd/devtoken -user 42 -role CUSTOMER
package main

import (
    "flag"
    "fmt"
    "os"
    "strings"
    "time"

    "github.com/joho/godotenv"

    "github.com/iliyamo/hotel-room-booking/internal/booking"
    "github.com/iliyamo/hotel-room-booking/internal/utils"
)

func main() {
    _ = godotenv.Load()

    userID := flag.Uint64("user", 1, "user id placed in the sub claim")
    role := flag.String("role", string(booking.RoleCustomer), "CUSTOMER, PROVIDER or ADMIN")
    ttlMin := flag.Int("ttl", envInt("ACCESS_TOKEN_TTL_MIN", 60), "lifetime in minutes")
    flag.Parse()

    secret := os.Getenv("JWT_SECRET")
    if secret == "" {
        fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
        os.Exit(1)
    }
    r := booking.Role(strings.ToUpper(*role))
    switch r {
    case booking.RoleCustomer, booking.RoleProvider, booking.RoleAdmin:
    default:
        fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
        os.Exit(2)
    }

    tok, err := utils.NewAccessToken(secret, *userID, string(r), time.Duration(*ttlMin)*time.Minute)
    if err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
    fmt.Println(tok.Token)
    fmt.Fprintf(os.Stderr, "expires %s\n", tok.Exp.Format(time.RFC3339))
}

func envInt(k string, d int) int {
    var n int
    if _, err := fmt.Sscanf(os.Getenv(k), "%d", &n); err == nil && n > 0 {
        return n
    }
    return d
}
