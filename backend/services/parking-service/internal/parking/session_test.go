package parking

import (
	"errors"
	"testing"
	"time"
)

func newTestSession(t *testing.T, entry time.Time) *Session {
	t.Helper()
	session, err := openSession("s-1", Vehicle{Plate: "ABC1234", ClientID: "c-1"}, newSpot(1), DefaultHourlyPolicy(), entry)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return session
}

func TestOpenSessionFailsOnOccupiedSpot(t *testing.T) {
	spot := newSpot(1)
	spot.TryOccupy()

	_, err := openSession("s-1", Vehicle{Plate: "ABC1234"}, spot, DefaultHourlyPolicy(), time.Now())
	if !errors.Is(err, ErrSpotUnavailable) {
		t.Fatalf("got %v, want ErrSpotUnavailable", err)
	}
}

func TestSessionCloseComputesFee(t *testing.T) {
	entry := time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)
	session := newTestSession(t, entry)

	if session.Fee() != 0 {
		t.Fatalf("open session fee = %v, want 0", session.Fee())
	}

	fee, err := session.Close(entry.Add(20 * time.Minute))
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if fee != 8.0 {
		t.Fatalf("fee for 20 minutes = %v, want 8.0", fee)
	}
	if session.Open() {
		t.Fatalf("session still open after close")
	}
	if session.Fee() != fee {
		t.Fatalf("stored fee %v differs from returned %v", session.Fee(), fee)
	}
}

func TestSessionCloseTwiceFails(t *testing.T) {
	entry := time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)
	session := newTestSession(t, entry)

	first, err := session.Close(entry.Add(time.Hour))
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := session.Close(entry.Add(2 * time.Hour)); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("second close: got %v, want ErrSessionClosed", err)
	}
	if session.Fee() != first {
		t.Fatalf("fee changed after failed close: %v != %v", session.Fee(), first)
	}
}

func TestSessionCloseInvalidExitKeepsSpot(t *testing.T) {
	entry := time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)
	session := newTestSession(t, entry)

	if _, err := session.Close(entry); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("got %v, want ErrInvalidInterval", err)
	}
	if !session.Open() {
		t.Fatalf("session closed despite invalid exit")
	}
	if !session.spot.Occupied() {
		t.Fatalf("spot released despite invalid exit")
	}
}

func TestAttachServiceMinimumStay(t *testing.T) {
	entry := time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)
	session := newTestSession(t, entry)

	// Wash requires one hour of dwell time.
	if _, err := session.AttachService(ServiceWash, entry.Add(30*time.Minute)); !errors.Is(err, ErrMinimumStayNotMet) {
		t.Fatalf("early attach: got %v, want ErrMinimumStayNotMet", err)
	}

	price, err := session.AttachService(ServiceWash, entry.Add(90*time.Minute))
	if err != nil {
		t.Fatalf("attach after minimum stay: %v", err)
	}
	if price != 20.0 {
		t.Fatalf("wash price = %v, want 20.0", price)
	}

	if _, err := session.AttachService(ServiceValet, entry.Add(2*time.Hour)); !errors.Is(err, ErrServiceAttached) {
		t.Fatalf("second attach: got %v, want ErrServiceAttached", err)
	}
}

func TestAttachServiceUnknownKind(t *testing.T) {
	entry := time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)
	session := newTestSession(t, entry)

	if _, err := session.AttachService(ServiceKind("detailing"), entry.Add(time.Hour)); !errors.Is(err, ErrUnknownService) {
		t.Fatalf("got %v, want ErrUnknownService", err)
	}
}

func TestCloseAddsServicePrice(t *testing.T) {
	entry := time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)
	session := newTestSession(t, entry)

	if _, err := session.AttachService(ServicePolish, entry.Add(2*time.Hour)); err != nil {
		t.Fatalf("attach: %v", err)
	}

	// 150 minutes = 10 fractions = 40.0, plus polish at 45.0.
	fee, err := session.Close(entry.Add(150 * time.Minute))
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if fee != 85.0 {
		t.Fatalf("fee = %v, want 85.0", fee)
	}
}

func TestAttachServiceAfterCloseFails(t *testing.T) {
	entry := time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)
	session := newTestSession(t, entry)

	if _, err := session.Close(entry.Add(3 * time.Hour)); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := session.AttachService(ServiceValet, entry.Add(3*time.Hour)); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("got %v, want ErrSessionClosed", err)
	}
}

func TestWithinMonth(t *testing.T) {
	entry := time.Date(2024, time.March, 31, 23, 0, 0, 0, time.UTC)
	session := newTestSession(t, entry)

	if !session.WithinMonth(time.March) {
		t.Fatalf("open session not counted in entry month")
	}
	if session.WithinMonth(time.April) {
		t.Fatalf("open session counted in month it never touched")
	}

	if _, err := session.Close(entry.Add(2 * time.Hour)); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !session.WithinMonth(time.March) || !session.WithinMonth(time.April) {
		t.Fatalf("boundary-spanning session must count toward both months")
	}
}

func TestContractEligibility(t *testing.T) {
	wash, ok := ContractFor(ServiceWash)
	if !ok {
		t.Fatalf("wash contract missing from catalog")
	}
	if wash.EligibleFor(59 * time.Minute) {
		t.Fatalf("wash eligible below minimum stay")
	}
	if !wash.EligibleFor(time.Hour) {
		t.Fatalf("wash not eligible at exact minimum stay")
	}

	valet, _ := ContractFor(ServiceValet)
	if !valet.EligibleFor(0) {
		t.Fatalf("valet has no minimum stay and must always be eligible")
	}
}
