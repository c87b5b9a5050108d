package store

import (
	"context"
	"errors"
	"testing"

	"protezlab-backend/internal/models"
)

type fakeLoader struct {
	snap *Snapshot
	err  error
}

func (f *fakeLoader) LoadAll(ctx context.Context) (*Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

func testSnapshot() *Snapshot {
	return &Snapshot{
		Clinics: []models.Clinic{{ID: 1, Name: "Dent Klinik"}},
		Doctors: []models.Doctor{
			{ID: 10, ClinicID: 1, Name: "Dr. Ayşe"},
			{ID: 11, ClinicID: 1, Name: "Dr. Mehmet"},
			{ID: 12, ClinicID: 2, Name: "Dr. Zeynep"},
		},
		ProsthesisTypes: []models.ProsthesisType{{ID: 5, Name: "Kron", BasePrice: 500}},
		Orders: []models.Order{
			{ID: 100, DoctorID: 10, Status: models.OrderStatusWaiting},
			{ID: 101, DoctorID: 10, Status: models.OrderStatusDelivered},
			{ID: 102, DoctorID: 11, Status: models.OrderStatusWaiting},
		},
		Payments: []models.Payment{
			{ID: 200, DoctorID: 10, Amount: 500},
		},
	}
}

func TestReloadReplacesSnapshot(t *testing.T) {
	loader := &fakeLoader{snap: testSnapshot()}
	st := New(loader)

	if err := st.Reload(context.Background()); err != nil {
		t.Fatalf("Reload hata döndürdü: %v", err)
	}
	if got := len(st.Snapshot().Doctors); got != 3 {
		t.Errorf("doktor sayısı = %d, beklenen 3", got)
	}
	if st.Snapshot().LoadedAt.IsZero() {
		t.Error("LoadedAt yenileme sonrası set edilmeli")
	}
}

func TestReloadFailureKeepsPreviousSnapshot(t *testing.T) {
	loader := &fakeLoader{snap: testSnapshot()}
	st := New(loader)
	if err := st.Reload(context.Background()); err != nil {
		t.Fatalf("ilk yükleme başarısız: %v", err)
	}

	loader.err = errors.New("orders verisi yüklenemedi: bağlantı koptu")
	if err := st.Reload(context.Background()); err == nil {
		t.Fatal("başarısız yükleme hata döndürmeli")
	}
	// Önceki görüntü kullanımda kalır.
	if got := len(st.Snapshot().Doctors); got != 3 {
		t.Errorf("başarısız tur önceki veriyi bozmamalı, doktor sayısı = %d", got)
	}
}

func TestLookupsReturnNilOrEmpty(t *testing.T) {
	sn := testSnapshot()

	if sn.DoctorByID(999) != nil {
		t.Error("bilinmeyen id için nil dönmeli")
	}
	if got := sn.OrdersByDoctor(999); len(got) != 0 {
		t.Errorf("eşleşme yoksa boş dilim dönmeli, got %d", len(got))
	}
	if got := sn.PaymentsByDoctor(999); got == nil {
		t.Error("boş sonuç nil değil boş dilim olmalı")
	}
}

func TestRelationScans(t *testing.T) {
	sn := testSnapshot()

	if got := len(sn.DoctorsByClinic(1)); got != 2 {
		t.Errorf("klinik 1'in doktor sayısı = %d, beklenen 2", got)
	}
	if got := len(sn.OrdersByDoctor(10)); got != 2 {
		t.Errorf("doktor 10'un sipariş sayısı = %d, beklenen 2", got)
	}
	if d := sn.DoctorByID(11); d == nil || d.Name != "Dr. Mehmet" {
		t.Errorf("DoctorByID(11) yanlış kayıt döndü: %+v", d)
	}
}

func TestLookupsAreSideEffectFree(t *testing.T) {
	sn := testSnapshot()
	before := len(sn.Orders)
	_ = sn.OrdersByDoctor(10)
	_ = sn.DoctorsByClinic(1)
	_ = sn.OrderByID(100)
	if len(sn.Orders) != before {
		t.Error("aramalar koleksiyonu değiştirmemeli")
	}
}

func TestApplyOrderUpsert(t *testing.T) {
	st := New(&fakeLoader{snap: testSnapshot()})
	if err := st.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}

	old := st.Snapshot()

	// Mevcut kaydı güncelle.
	st.ApplyOrder(models.Order{ID: 100, DoctorID: 10, Status: models.OrderStatusInProgress})
	if got := st.Snapshot().OrderByID(100).Status; got != models.OrderStatusInProgress {
		t.Errorf("sipariş durumu güncellenmedi: %s", got)
	}

	// Yeni kayıt ekle.
	st.ApplyOrder(models.Order{ID: 103, DoctorID: 12, Status: models.OrderStatusWaiting})
	if got := len(st.Snapshot().Orders); got != 4 {
		t.Errorf("sipariş sayısı = %d, beklenen 4", got)
	}

	// Eski okuyucuların elindeki görüntü değişmez.
	if got := old.OrderByID(100).Status; got != models.OrderStatusWaiting {
		t.Errorf("eski görüntü mutasyondan etkilenmemeli: %s", got)
	}
}

func TestRemoveExpense(t *testing.T) {
	snap := testSnapshot()
	snap.Expenses = []models.Expense{{ID: 300, Category: "Malzeme", Amount: 250}}
	st := New(&fakeLoader{snap: snap})
	if err := st.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}

	st.RemoveExpense(300)
	if got := len(st.Snapshot().Expenses); got != 0 {
		t.Errorf("gider silinmedi, kalan %d", got)
	}
	// Olmayan kaydı silmek sessizce geçer.
	st.RemoveExpense(301)
}
