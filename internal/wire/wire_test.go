package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"print-shop/internal/data/repository"
	"print-shop/internal/dto/request"
	"print-shop/internal/usecase"
	"print-shop/pkg/database"
	"print-shop/pkg/mailer"
	"print-shop/pkg/session"
	"print-shop/pkg/storage"
	"print-shop/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type shop struct {
	server *httptest.Server
	repo   *repository.Repository
	svc    *usecase.Service
}

func newShop(t *testing.T) *shop {
	t.Helper()
	log := zap.NewNop()

	config := &utils.Config{}
	config.App.PageSize = 5
	config.App.MaxUploadMB = 2
	config.App.StatusPolicy = "permissive"
	config.Storage.Driver = "local"
	config.Storage.LocalRoot = t.TempDir()
	config.Storage.LocalURL = "/static"
	config.Session.Revalidate = true

	repo := repository.NewRepository(database.NewMemoryStore(), log)
	require.NoError(t, repo.EnsureIndexes(context.Background()))

	sessions, err := session.NewCookieStore("flow-secret", session.DefaultOptions())
	require.NoError(t, err)

	deps := Deps{
		Repo:     repo,
		Disk:     storage.NewLocalDisk(config.Storage.LocalRoot, config.Storage.LocalURL),
		Sessions: sessions,
		Mailer:   mailer.New(utils.EmailConfig{}, log),
	}
	app := Wiring(deps, config, log)

	server := httptest.NewServer(app.Router)
	t.Cleanup(server.Close)

	return &shop{
		server: server,
		repo:   repo,
		svc:    usecase.NewService(repo, deps.Disk, deps.Mailer, config, log),
	}
}

// browser keeps cookies and never follows redirects.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func (s *shop) browser(t *testing.T) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:    t,
		base: s.server.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type pageBody struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Viewer  utils.Viewer    `json:"viewer"`
		Admin   string          `json:"admin"`
		Flashes []session.Flash `json:"flashes"`
		Data    json.RawMessage `json:"data"`
	} `json:"data"`
}

func (b *browser) do(req *http.Request) *http.Response {
	b.t.Helper()
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	b.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (b *browser) get(path string) *http.Response {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.base+path, nil)
	require.NoError(b.t, err)
	return b.do(req)
}

func (b *browser) page(path string) pageBody {
	b.t.Helper()
	resp := b.get(path)
	require.Equal(b.t, http.StatusOK, resp.StatusCode, path)

	var body pageBody
	require.NoError(b.t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func (b *browser) postForm(path string, values url.Values) *http.Response {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.base+path, strings.NewReader(values.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

// postMultipart sends fields plus files keyed by field name -> filename.
func (b *browser) postMultipart(path string, fields [][2]string, files map[string]string) *http.Response {
	b.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range fields {
		require.NoError(b.t, mw.WriteField(f[0], f[1]))
	}
	for field, name := range files {
		part, err := mw.CreateFormFile(field, name)
		require.NoError(b.t, err)
		_, err = part.Write([]byte("content of " + name))
		require.NoError(b.t, err)
	}
	require.NoError(b.t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, b.base+path, &buf)
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return b.do(req)
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, location, resp.Header.Get("Location"))
}

func flashMessages(p pageBody) []string {
	msgs := make([]string, 0, len(p.Flashes()))
	for _, f := range p.Flashes() {
		msgs = append(msgs, f.Message)
	}
	return msgs
}

func (p pageBody) Flashes() []session.Flash { return p.Data.Flashes }

func TestHealthAndMetrics(t *testing.T) {
	s := newShop(t)
	b := s.browser(t)

	resp := b.get("/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = b.get("/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = b.get("/tidak-ada")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGuestIsRedirectedToLogin(t *testing.T) {
	s := newShop(t)
	b := s.browser(t)

	assertRedirect(t, b.get("/profil"), "/login")
	assertRedirect(t, b.get("/adminDashboard"), "/admin/login")

	home := b.page("/")
	assert.False(t, home.Data.Viewer.LoggedIn)
	assert.Equal(t, utils.DefaultPhoto, home.Data.Viewer.Photo)
	assert.Equal(t, []string{
		"Harap login terlebih dahulu.",
		"Harap login sebagai admin terlebih dahulu.",
	}, flashMessages(home))
}

func TestRegisterLoginAndProfile(t *testing.T) {
	s := newShop(t)
	b := s.browser(t)

	resp := b.postForm("/register", url.Values{
		"name":             {"Rina"},
		"phone":            {"081200000001"},
		"email":            {"rina@example.com"},
		"password":         {"rahasia123"},
		"confirm_password": {"rahasia123"},
	})
	assertRedirect(t, resp, "/login")

	resp = b.postForm("/login", url.Values{"email": {"rina@example.com"}, "password": {"salah"}})
	assertRedirect(t, resp, "/login")
	login := b.page("/login")
	assert.Contains(t, flashMessages(login), "Email atau kata sandi salah.")

	resp = b.postForm("/login", url.Values{"email": {"rina@example.com"}, "password": {"rahasia123"}})
	assertRedirect(t, resp, "/")

	profile := b.page("/profil")
	assert.True(t, profile.Data.Viewer.LoggedIn)
	assert.Equal(t, "Rina", profile.Data.Viewer.Name)
	assert.Equal(t, []string{"Login berhasil!"}, flashMessages(profile))

	assertRedirect(t, b.get("/update_profile"), "/profil")

	// a user session does not open admin pages
	assertRedirect(t, b.get("/adminDashboard"), "/admin/login")

	assertRedirect(t, b.get("/logout"), "/login")
	assertRedirect(t, b.get("/profil"), "/login")
}

func TestOrderFlow(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()

	_, err := s.svc.Auth.SeedAdmin(ctx, &request.CreateAdminRequest{
		Name: "Admin", Email: "admin@example.com", Password: "admin12345", ConfirmPassword: "admin12345",
	})
	require.NoError(t, err)

	admin := s.browser(t)
	assertRedirect(t, admin.postForm("/admin/login", url.Values{
		"email": {"admin@example.com"}, "password": {"admin12345"},
	}), "/adminDashboard")

	resp := admin.postMultipart("/tambahDataProduk", [][2]string{
		{"kategori", "Cetak"},
		{"namaProduk", "Brosur"},
		{"deskripsi", "Art paper 150gsm"},
		{"ukuran[]", "A4"},
		{"hargaPcs[]", "1500"},
		{"ukuran[]", "A3"},
		{"hargaPcs[]", "2500"},
	}, map[string]string{"photo": "brosur.png"})
	assertRedirect(t, resp, "/adminProduk")
	catalog := admin.page("/adminProduk")
	assert.Equal(t, []string{"Login admin berhasil!", "Produk berhasil ditambahkan!"}, flashMessages(catalog))

	products, err := s.repo.Product.FindAll(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
	product := products[0]
	require.Len(t, product.Tiers, 2)

	customer := s.browser(t)
	_, err = s.svc.Auth.Register(ctx, &request.RegisterRequest{
		Name: "Budi", Phone: "081200000002", Email: "budi@example.com",
		Password: "rahasia123", ConfirmPassword: "rahasia123",
	})
	require.NoError(t, err)
	assertRedirect(t, customer.postForm("/login", url.Values{
		"email": {"budi@example.com"}, "password": {"rahasia123"},
	}), "/")

	// unknown size goes back to the form
	resp = customer.postMultipart("/pemesanan/"+product.ID, [][2]string{
		{"jumlah", "2"},
		{"ukuran", "A5"},
		{"opsi_pengiriman", "Ambil di tempat"},
		{"metode_pembayaran", "BCA"},
	}, map[string]string{"desain": "desain.pdf"})
	assertRedirect(t, resp, "/pemesanan/"+product.ID)
	form := customer.page("/pemesanan/" + product.ID)
	assert.Contains(t, flashMessages(form), "Ukuran tidak valid.")

	resp = customer.postMultipart("/pemesanan/"+product.ID, [][2]string{
		{"jumlah", "2"},
		{"ukuran", "A4"},
		{"opsi_pengiriman", "Ambil di tempat"},
		{"metode_pembayaran", "BCA"},
	}, map[string]string{"desain": "desain.pdf"})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	detailPath := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(detailPath, "/detail_pesanan/"))
	orderID := strings.TrimPrefix(detailPath, "/detail_pesanan/")

	detail := customer.page(detailPath)
	require.Len(t, detail.Flashes(), 1)
	assert.Contains(t, detail.Flashes()[0].Message, "Rp 3.000")

	resp = customer.postMultipart("/upload_bukti/"+orderID, nil, map[string]string{"bukti_pembayaran": "bukti.jpg"})
	assertRedirect(t, resp, "/riwayat_pemesanan")
	history := customer.page("/riwayat_pemesanan")
	assert.Equal(t, []string{"Bukti pembayaran berhasil diunggah."}, flashMessages(history))

	resp = admin.postForm("/update_order_status", url.Values{"order_id": {orderID}, "new_status": {"Diproses"}})
	assertRedirect(t, resp, "/adminDaftarPemesanan")
	list := admin.page("/adminDaftarPemesanan")
	assert.Equal(t, []string{"Status pemesanan berhasil diperbarui!"}, flashMessages(list))

	resp = admin.postForm("/update_order_status", url.Values{"order_id": {orderID}, "new_status": {"Diproses"}})
	assertRedirect(t, resp, "/adminDaftarPemesanan")
	list = admin.page("/adminDaftarPemesanan")
	require.Len(t, list.Flashes(), 1)
	assert.Equal(t, session.FlashWarning, list.Flashes()[0].Category)

	resp = admin.postForm("/update_order_status", url.Values{"order_id": {orderID}, "new_status": {"Hilang"}})
	assertRedirect(t, resp, "/adminDaftarPemesanan")
	list = admin.page("/adminDaftarPemesanan")
	assert.Equal(t, []string{"ID pesanan atau status tidak valid."}, flashMessages(list))

	order, err := s.repo.Order.FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, "Diproses", string(order.Status))

	totals := admin.get("/totals")
	require.Equal(t, http.StatusOK, totals.StatusCode)
	var body struct {
		Data struct {
			TotalUsers    int64 `json:"total_customers"`
			TotalProducts int64 `json:"total_products"`
			TotalOrders   int64 `json:"total_orders"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(totals.Body).Decode(&body))
	assert.Equal(t, int64(1), body.Data.TotalUsers)
	assert.Equal(t, int64(1), body.Data.TotalProducts)
	assert.Equal(t, int64(1), body.Data.TotalOrders)

	assertRedirect(t, admin.postForm("/hapusDataPemesanan_order/"+orderID, nil), "/adminDaftarPemesanan")
	assertRedirect(t, admin.postForm("/hapusDataPemesanan_order/"+orderID, nil), "/adminDaftarPemesanan")
	list = admin.page("/adminDaftarPemesanan")
	assert.Equal(t, []string{"Pesanan berhasil dihapus!", "Pesanan tidak ditemukan."}, flashMessages(list))
}

func TestDeletedAccountLosesAccess(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()

	user, err := s.svc.Auth.Register(ctx, &request.RegisterRequest{
		Name: "Sari", Phone: "081200000003", Email: "sari@example.com",
		Password: "rahasia123", ConfirmPassword: "rahasia123",
	})
	require.NoError(t, err)

	b := s.browser(t)
	assertRedirect(t, b.postForm("/login", url.Values{
		"email": {"sari@example.com"}, "password": {"rahasia123"},
	}), "/")
	b.page("/profil")

	require.NoError(t, s.svc.User.DeleteCustomer(ctx, user.ID))
	assertRedirect(t, b.get("/profil"), "/login")

	home := b.page("/")
	assert.False(t, home.Data.Viewer.LoggedIn)
}
