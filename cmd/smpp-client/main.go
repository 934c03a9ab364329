// Command smpp-client is a minimal ESME example: it connects, binds as a
// transceiver, optionally sends one message, and keeps the session alive
// for a duration by polling its keep-alive schedule. Messages the SMSC
// pushes during that time are not read or printed. Uses the stdlib flag
// package the way ajankovic/smpp uses it for its own command-line
// toggles.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/smppgo/smpp"
	"github.com/smppgo/smpp/pdu"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		host       = flag.String("host", "localhost", "SMSC host")
		port       = flag.Int("port", 2775, "SMSC port")
		systemID   = flag.String("system-id", "", "bind system_id")
		password   = flag.String("password", "", "bind password")
		to         = flag.String("to", "", "destination address for a test submit_sm")
		from       = flag.String("from", "", "source address for a test submit_sm")
		message    = flag.String("message", "", "message text for a test submit_sm")
		runFor     = flag.Duration("run-for", 0, "stay bound and poll keep-alive for this long after sending")
		logLevel   = flag.String("log-level", "info", "logrus level")
	)
	flag.Parse()

	log := logrus.New()
	if level, err := logrus.ParseLevel(*logLevel); err == nil {
		log.SetLevel(level)
	}

	conn, err := smpp.Dial(*host, *port, 10*time.Second)
	if err != nil {
		return fmt.Errorf("connecting: %w", err)
	}

	session := smpp.NewSession(conn, smpp.WithLogger(smpp.NewLogrusLogger(log)))
	defer session.Disconnect()

	if err := session.Bind(smpp.BindTransceiver, smpp.BindCredentials{
		SystemID: *systemID,
		Password: *password,
	}); err != nil {
		return fmt.Errorf("binding: %w", err)
	}

	if *message != "" {
		req := &pdu.SubmitSm{
			SourceAddr:   pdu.Address{Number: *from},
			DestAddr:     pdu.Address{Number: *to},
			ShortMessage: []byte(*message),
		}
		id, err := session.SubmitSm(req)
		if err != nil {
			return fmt.Errorf("submitting message: %w", err)
		}
		fmt.Printf("submitted message_id=%s\n", id)
	}

	if *runFor > 0 {
		deadline := time.Now().Add(*runFor)
		for time.Now().Before(deadline) {
			if err := session.Poll(); err != nil {
				return fmt.Errorf("polling session: %w", err)
			}
			time.Sleep(time.Second)
		}
	}

	return session.Unbind()
}
