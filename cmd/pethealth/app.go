package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"pet-health-uk/internal/adapters/pethealthapi"
	"pet-health-uk/internal/domain/appointments"
	"pet-health-uk/internal/domain/clinics"
	"pet-health-uk/internal/domain/pets"
	"pet-health-uk/internal/domain/symptoms"
	"pet-health-uk/internal/platform/logger"
	"pet-health-uk/internal/session"
	"pet-health-uk/internal/syncer"
)

var errUsage = errors.New("usage")

const usage = `usage: pethealth <command> [flags]

session:
  status                         estado de la sesión local
  register -first -last -email -password -postcode [-phone]
  login -email -password
  pull                           trae perfil, mascotas y citas del servidor
  logout
  onboard                        marca el onboarding como completado

pets:
  pets
  add-pet -name -species [-breed] [-dob YYYY-MM-DD] [-weight kg] [-chip]
  rm-pet -id

appointments:
  appointments [-past]
  book -pet -clinic -at RFC3339 [-type consultation] [-notes]
  cancel -id

clinics:
  clinics [-q texto] [-emergency]
  slots -clinic -date YYYY-MM-DD

records:
  vaccinations -pet
  medications -pet [-active]

symptoms:
  symptoms [-q texto]
  triage -pet -symptoms "a,b" [-message texto]
  emergency
`

type app struct {
	store  *session.Store
	client *pethealthapi.Client
	sync   *syncer.Syncer
	out    io.Writer
	log    logger.Logger
	now    func() time.Time
}

func newApp(store *session.Store, client *pethealthapi.Client, out io.Writer, log logger.Logger) *app {
	return &app{
		store:  store,
		client: client,
		sync:   syncer.New(client, store, log),
		out:    out,
		log:    logger.OrNop(log),
		now:    time.Now,
	}
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return errUsage
	}

	cmds := map[string]func(context.Context, []string) error{
		"status":       a.status,
		"register":     a.register,
		"login":        a.login,
		"pull":         a.pull,
		"logout":       a.logout,
		"onboard":      a.onboard,
		"pets":         a.listPets,
		"add-pet":      a.addPet,
		"rm-pet":       a.removePet,
		"appointments": a.listAppointments,
		"book":         a.book,
		"cancel":       a.cancel,
		"clinics":      a.listClinics,
		"slots":        a.slots,
		"vaccinations": a.vaccinations,
		"medications":  a.medications,
		"symptoms":     a.symptomCategories,
		"triage":       a.triage,
		"emergency":    a.emergency,
	}
	cmd, ok := cmds[args[0]]
	if !ok {
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return cmd(ctx, args[1:])
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// online: hay token remoto; las altas van al servidor y luego se hace pull.
func (a *app) online() bool {
	return a.client.AuthToken() != ""
}

func (a *app) requireOnline() error {
	if !a.online() {
		return errors.New("not signed in: run login or register first")
	}
	return nil
}

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
}

func required(name, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: -%s is required", errUsage, name)
	}
	return nil
}

func parseRemoteID(flagName, v string) (int64, error) {
	id, err := pethealthapi.ParseID(v)
	if err != nil {
		return 0, fmt.Errorf("-%s: %w", flagName, err)
	}
	return id, nil
}

// -------------------------
// Sesión
// -------------------------

func (a *app) status(ctx context.Context, _ []string) error {
	u, ok := a.store.CurrentUser()
	if !a.store.IsLoggedIn() || !ok {
		fmt.Fprintln(a.out, "signed out")
	} else {
		fmt.Fprintf(a.out, "signed in as %s <%s>\n", u.FullName(), u.Email)
	}
	fmt.Fprintf(a.out, "onboarding complete: %t\n", a.store.HasCompletedOnboarding())
	fmt.Fprintf(a.out, "remote token: %t\n", a.online())
	fmt.Fprintf(a.out, "pets: %d, upcoming appointments: %d\n", len(a.store.Pets()), len(a.store.UpcomingAppointments()))
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := a.flags("register")
	first := fs.String("first", "", "nombre")
	last := fs.String("last", "", "apellido")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password (mínimo 8)")
	postcode := fs.String("postcode", "", "código postal")
	phone := fs.String("phone", "", "teléfono (opcional)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, f := range []struct{ name, v string }{
		{"first", *first}, {"last", *last}, {"email", *email}, {"password", *password}, {"postcode", *postcode},
	} {
		if err := required(f.name, f.v); err != nil {
			return err
		}
	}

	in := pethealthapi.RegisterRequest{
		FirstName: *first,
		LastName:  *last,
		Email:     *email,
		Password:  *password,
		Postcode:  *postcode,
	}
	if p := strings.TrimSpace(*phone); p != "" {
		in.PhoneNumber = &p
	}
	if err := a.sync.SignUp(ctx, in); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "account created")
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := a.flags("login")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("email", *email); err != nil {
		return err
	}
	if err := a.sync.SignIn(ctx, *email, *password); err != nil {
		return err
	}
	u, _ := a.store.CurrentUser()
	fmt.Fprintf(a.out, "welcome back, %s\n", u.FirstName)
	return nil
}

func (a *app) pull(ctx context.Context, _ []string) error {
	if err := a.requireOnline(); err != nil {
		return err
	}
	if err := a.sync.Pull(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "synced %d pets, %d appointments\n", len(a.store.Pets()), len(a.store.Appointments()))
	return nil
}

func (a *app) logout(ctx context.Context, _ []string) error {
	err := a.sync.SignOut(ctx)
	fmt.Fprintln(a.out, "signed out")
	return err
}

func (a *app) onboard(ctx context.Context, _ []string) error {
	return a.store.CompleteOnboarding(ctx)
}

// -------------------------
// Mascotas
// -------------------------

func (a *app) listPets(ctx context.Context, _ []string) error {
	now := a.now()
	tw := a.table()
	fmt.Fprintln(tw, "ID\tNAME\tSPECIES\tBREED\tAGE")
	for _, p := range a.store.Pets() {
		age := "-"
		if !p.DateOfBirth.IsZero() {
			age = p.Age(now)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Species, p.Breed, age)
	}
	return tw.Flush()
}

func (a *app) addPet(ctx context.Context, args []string) error {
	fs := a.flags("add-pet")
	name := fs.String("name", "", "nombre")
	species := fs.String("species", "", "dog, cat, rabbit, guinea_pig, hamster, bird, reptile, other")
	breed := fs.String("breed", "", "raza")
	dob := fs.String("dob", "", "fecha de nacimiento YYYY-MM-DD")
	weight := fs.Float64("weight", 0, "peso en kg")
	chip := fs.String("chip", "", "número de microchip")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("name", *name); err != nil {
		return err
	}
	sp, err := pets.ParseSpecies(*species)
	if err != nil {
		return err
	}

	p := pets.Pet{Name: *name, Species: sp, Breed: strings.TrimSpace(*breed)}
	if *dob != "" {
		d, err := time.Parse(pethealthapi.DateLayout, *dob)
		if err != nil {
			return fmt.Errorf("-dob: %w", err)
		}
		p.DateOfBirth = d
	}
	if *weight > 0 {
		p.Weight = weight
	}
	if c := strings.TrimSpace(*chip); c != "" {
		p.MicrochipNumber = &c
	}

	if !a.online() {
		added, err := a.store.AddPet(ctx, p)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "added %s (%s, local only)\n", added.Name, added.ID)
		return nil
	}

	created, err := a.client.CreatePet(ctx, pethealthapi.NewPetRequest(p))
	if err != nil {
		return err
	}
	if err := a.sync.Pull(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "added %s (%d)\n", created.Name, created.ID)
	return nil
}

func (a *app) removePet(ctx context.Context, args []string) error {
	fs := a.flags("rm-pet")
	id := fs.String("id", "", "id de la mascota")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("id", *id); err != nil {
		return err
	}
	if !a.online() {
		return a.store.DeletePet(ctx, *id)
	}
	rid, err := parseRemoteID("id", *id)
	if err != nil {
		return err
	}
	if err := a.client.DeletePet(ctx, rid); err != nil {
		return err
	}
	return a.sync.Pull(ctx)
}

// -------------------------
// Citas
// -------------------------

func (a *app) listAppointments(ctx context.Context, args []string) error {
	fs := a.flags("appointments")
	past := fs.Bool("past", false, "mostrar pasadas en lugar de próximas")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items := a.store.UpcomingAppointments()
	if *past {
		items = a.store.PastAppointments()
	}
	tw := a.table()
	fmt.Fprintln(tw, "ID\tWHEN\tPET\tCLINIC\tTYPE\tSTATUS")
	for _, ap := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ap.ID, ap.DateTime.Local().Format("Mon 02 Jan 15:04"), ap.PetName, ap.ClinicName, ap.Type, ap.Status)
	}
	return tw.Flush()
}

func (a *app) book(ctx context.Context, args []string) error {
	fs := a.flags("book")
	pet := fs.String("pet", "", "id de la mascota")
	clinic := fs.String("clinic", "", "id de la clínica")
	at := fs.String("at", "", "fecha y hora RFC3339")
	typ := fs.String("type", string(appointments.TypeConsultation), "tipo de cita")
	notes := fs.String("notes", "", "notas")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireOnline(); err != nil {
		return err
	}
	petID, err := parseRemoteID("pet", *pet)
	if err != nil {
		return err
	}
	clinicID, err := parseRemoteID("clinic", *clinic)
	if err != nil {
		return err
	}
	t, err := appointments.ParseType(*typ)
	if err != nil {
		return err
	}

	req := pethealthapi.CreateAppointmentRequest{PetID: petID, ClinicID: clinicID, Type: string(t), DateTime: *at}
	if n := strings.TrimSpace(*notes); n != "" {
		req.Notes = &n
	}
	created, err := a.client.CreateAppointment(ctx, req)
	if err != nil {
		return err
	}
	if err := a.sync.Pull(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "booked %s at %s for %s (%d)\n", created.Type, created.ClinicName, created.PetName, created.ID)
	return nil
}

func (a *app) cancel(ctx context.Context, args []string) error {
	fs := a.flags("cancel")
	id := fs.String("id", "", "id de la cita")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("id", *id); err != nil {
		return err
	}
	if !a.online() {
		return a.store.CancelAppointment(ctx, *id)
	}
	rid, err := parseRemoteID("id", *id)
	if err != nil {
		return err
	}
	if err := a.client.CancelAppointment(ctx, rid); err != nil {
		return err
	}
	if err := a.sync.Pull(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "cancelled")
	return nil
}

// -------------------------
// Clínicas
// -------------------------

func (a *app) listClinics(ctx context.Context, args []string) error {
	fs := a.flags("clinics")
	q := fs.String("q", "", "buscar en nombre, código postal o dirección")
	emergency := fs.Bool("emergency", false, "solo urgencias")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remote, err := a.client.GetClinics(ctx)
	if err != nil {
		return err
	}
	items := make([]clinics.Clinic, 0, len(remote))
	for _, c := range remote {
		items = append(items, c.ToDomain())
	}
	items = clinics.Apply(items, clinics.Filter{EmergencyOnly: *emergency, Query: *q})

	tw := a.table()
	fmt.Fprintln(tw, "ID\tNAME\tPOSTCODE\tPHONE\tEMERGENCY\tDISTANCE")
	for _, c := range items {
		dist := "-"
		if c.Distance != nil {
			dist = fmt.Sprintf("%.1f mi", *c.Distance)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n", c.ID, c.Name, c.Postcode, c.PhoneNumber, c.IsEmergency, dist)
	}
	return tw.Flush()
}

func (a *app) slots(ctx context.Context, args []string) error {
	fs := a.flags("slots")
	clinic := fs.String("clinic", "", "id de la clínica")
	date := fs.String("date", "", "día YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}
	clinicID, err := parseRemoteID("clinic", *clinic)
	if err != nil {
		return err
	}
	if err := required("date", *date); err != nil {
		return err
	}

	remote, err := a.client.GetAvailableSlots(ctx, clinicID, *date)
	if err != nil {
		return err
	}
	var free []string
	for _, s := range remote {
		if slot := s.ToDomain(); slot.Available {
			free = append(free, slot.Time)
		}
	}
	if len(free) == 0 {
		fmt.Fprintln(a.out, "no free slots")
		return nil
	}
	fmt.Fprintln(a.out, strings.Join(free, " "))
	return nil
}

// -------------------------
// Registros
// -------------------------

func (a *app) vaccinations(ctx context.Context, args []string) error {
	fs := a.flags("vaccinations")
	pet := fs.String("pet", "", "id de la mascota")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireOnline(); err != nil {
		return err
	}
	petID, err := parseRemoteID("pet", *pet)
	if err != nil {
		return err
	}

	remote, err := a.client.GetVaccinations(ctx, petID)
	if err != nil {
		return err
	}
	now := a.now()
	tw := a.table()
	fmt.Fprintln(tw, "NAME\tGIVEN\tNEXT DUE\tOVERDUE")
	for _, rv := range remote {
		v, err := rv.ToDomain()
		if err != nil {
			return err
		}
		next := "-"
		if v.NextDueDate != nil {
			next = v.NextDueDate.Format(pethealthapi.DateLayout)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", v.Name, v.DateGiven.Format(pethealthapi.DateLayout), next, v.Overdue(now))
	}
	return tw.Flush()
}

func (a *app) medications(ctx context.Context, args []string) error {
	fs := a.flags("medications")
	pet := fs.String("pet", "", "id de la mascota")
	active := fs.Bool("active", false, "solo activas")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireOnline(); err != nil {
		return err
	}
	petID, err := parseRemoteID("pet", *pet)
	if err != nil {
		return err
	}

	get := a.client.GetMedications
	if *active {
		get = a.client.GetActiveMedications
	}
	remote, err := get(ctx, petID)
	if err != nil {
		return err
	}
	tw := a.table()
	fmt.Fprintln(tw, "NAME\tDOSAGE\tFREQUENCY\tSTATUS")
	for _, rm := range remote {
		m, err := rm.ToDomain()
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Name, m.Dosage, m.Frequency, m.Status)
	}
	return tw.Flush()
}

// -------------------------
// Síntomas
// -------------------------

func (a *app) symptomCategories(ctx context.Context, args []string) error {
	fs := a.flags("symptoms")
	q := fs.String("q", "", "buscar por nombre o descripción")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remote, err := a.client.GetSymptomCategories(ctx)
	if err != nil {
		return err
	}
	cats := make([]symptoms.Category, 0, len(remote))
	for _, c := range remote {
		cats = append(cats, c.ToDomain())
	}
	if strings.TrimSpace(*q) != "" {
		cats = symptoms.Search(cats, *q)
	}
	for _, c := range cats {
		fmt.Fprintf(a.out, "%s\n", c.Name)
		for _, s := range c.Symptoms {
			fmt.Fprintf(a.out, "  - %s [%s]\n", s.Name, s.Severity)
		}
	}
	return nil
}

func (a *app) triage(ctx context.Context, args []string) error {
	fs := a.flags("triage")
	pet := fs.String("pet", "", "id de la mascota")
	list := fs.String("symptoms", "", "síntomas separados por coma")
	message := fs.String("message", "", "detalle adicional")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireOnline(); err != nil {
		return err
	}
	petID, err := parseRemoteID("pet", *pet)
	if err != nil {
		return err
	}
	var names []string
	for _, s := range strings.Split(*list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			names = append(names, s)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("%w: -symptoms is required", errUsage)
	}

	sess, err := a.client.StartSymptomSession(ctx, petID, names)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, sess.Message)
	printList(a.out, sess.Recommendations)

	if strings.TrimSpace(*message) == "" {
		return nil
	}
	reply, err := a.client.SendSymptomMessage(ctx, sess.SessionID, *message)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, reply.Message)
	if reply.Severity != nil {
		fmt.Fprintf(a.out, "severity: %s\n", *reply.Severity)
	}
	if reply.SeekVetImmediately != nil && *reply.SeekVetImmediately {
		fmt.Fprintln(a.out, "SEEK VET IMMEDIATELY")
	}
	printList(a.out, reply.Recommendations)
	return nil
}

func (a *app) emergency(ctx context.Context, _ []string) error {
	info, err := a.client.GetEmergencyInfo(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "emergency line: %s\n", info.EmergencyNumber)
	names := make([]string, 0, len(info.EmergencyClinics))
	for _, c := range info.EmergencyClinics {
		names = append(names, fmt.Sprintf("%s (%s)", c.Name, c.PhoneNumber))
	}
	sort.Strings(names)
	printList(a.out, names)
	printList(a.out, info.FirstAidTips)
	return nil
}

func printList(w io.Writer, items []string) {
	for _, s := range items {
		fmt.Fprintf(w, "  * %s\n", s)
	}
}
