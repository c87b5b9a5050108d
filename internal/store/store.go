// Package store, aktif oturumun tüm domain kayıtlarını bellekte tutar.
// Koleksiyonlar veritabanından artımlı değil toptan yenilenir; tüm türetilmiş
// hesaplamalar (bakiye, rapor) bu anlık görüntü üzerinden yapılır.
package store

import (
	"context"
	"log"
	"sync"
	"time"

	"protezlab-backend/internal/models"
)

// Snapshot: tek bir yenileme turunda yüklenen koleksiyonların tamamı.
// Yenileme ya hepsini birden değiştirir ya da hiçbirini değiştirmez.
type Snapshot struct {
	Clinics         []models.Clinic
	Doctors         []models.Doctor
	ProsthesisTypes []models.ProsthesisType
	Technicians     []models.Technician
	Orders          []models.Order
	Payments        []models.Payment
	Expenses        []models.Expense
	Users           []models.User

	LoadedAt time.Time
}

// Loader, tüm koleksiyonları kalıcı depodan yükler. Testlerde sahte veriyle
// değiştirilebilsin diye arayüz olarak tanımlı.
type Loader interface {
	LoadAll(ctx context.Context) (*Snapshot, error)
}

type Store struct {
	mu     sync.RWMutex
	snap   *Snapshot
	loader Loader
}

func New(loader Loader) *Store {
	return &Store{
		snap:   &Snapshot{},
		loader: loader,
	}
}

// Reload tüm koleksiyonları yeniden yükler. Tek bir koleksiyon bile
// yüklenemezse tur iptal edilir ve önceki anlık görüntü kullanılmaya
// devam eder.
func (s *Store) Reload(ctx context.Context) error {
	snap, err := s.loader.LoadAll(ctx)
	if err != nil {
		return err
	}
	snap.LoadedAt = time.Now()

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

// Snapshot geçerli anlık görüntüyü döndürür. Dönen değer salt okunur kabul
// edilir; yazma akışı yalnızca Reload ve Apply* fonksiyonlarından geçer.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// StartRefresher, ctx iptal edilene kadar sabit aralıkla toptan yenileme
// yapar. Başarısız turlar loglanır, önceki görüntü kullanımda kalır.
func (s *Store) StartRefresher(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Reload(ctx); err != nil {
					log.Printf("Arka plan yenileme başarısız, önceki veri kullanılıyor: %v", err)
				}
			}
		}
	}()
}

// ----------------------------------------------------------------------
// Tekil kayıt aramaları. Bulunamayan kayıt için nil döner, hata dönmez.
// ----------------------------------------------------------------------

func (sn *Snapshot) ClinicByID(id uint) *models.Clinic {
	for i := range sn.Clinics {
		if sn.Clinics[i].ID == id {
			return &sn.Clinics[i]
		}
	}
	return nil
}

func (sn *Snapshot) DoctorByID(id uint) *models.Doctor {
	for i := range sn.Doctors {
		if sn.Doctors[i].ID == id {
			return &sn.Doctors[i]
		}
	}
	return nil
}

func (sn *Snapshot) ProsthesisTypeByID(id uint) *models.ProsthesisType {
	for i := range sn.ProsthesisTypes {
		if sn.ProsthesisTypes[i].ID == id {
			return &sn.ProsthesisTypes[i]
		}
	}
	return nil
}

func (sn *Snapshot) TechnicianByID(id uint) *models.Technician {
	for i := range sn.Technicians {
		if sn.Technicians[i].ID == id {
			return &sn.Technicians[i]
		}
	}
	return nil
}

func (sn *Snapshot) OrderByID(id uint) *models.Order {
	for i := range sn.Orders {
		if sn.Orders[i].ID == id {
			return &sn.Orders[i]
		}
	}
	return nil
}

// ----------------------------------------------------------------------
// İlişki taramaları. Eşleşme yoksa boş dilim döner.
// ----------------------------------------------------------------------

func (sn *Snapshot) DoctorsByClinic(clinicID uint) []models.Doctor {
	out := []models.Doctor{}
	for _, d := range sn.Doctors {
		if d.ClinicID == clinicID {
			out = append(out, d)
		}
	}
	return out
}

func (sn *Snapshot) OrdersByDoctor(doctorID uint) []models.Order {
	out := []models.Order{}
	for _, o := range sn.Orders {
		if o.DoctorID == doctorID {
			out = append(out, o)
		}
	}
	return out
}

func (sn *Snapshot) PaymentsByDoctor(doctorID uint) []models.Payment {
	out := []models.Payment{}
	for _, p := range sn.Payments {
		if p.DoctorID == doctorID {
			out = append(out, p)
		}
	}
	return out
}

// ----------------------------------------------------------------------
// İyimser uygulama: mutasyon veritabanı tarafından onaylandıktan SONRA
// anlık görüntüye işlenir. Sonraki toptan yenileme sunucu halini getirir.
// ----------------------------------------------------------------------

func (s *Store) ApplyClinic(cl models.Clinic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap.clone()
	for i := range snap.Clinics {
		if snap.Clinics[i].ID == cl.ID {
			snap.Clinics[i] = cl
			s.snap = snap
			return
		}
	}
	snap.Clinics = append(snap.Clinics, cl)
	s.snap = snap
}

func (s *Store) ApplyDoctor(d models.Doctor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap.clone()
	for i := range snap.Doctors {
		if snap.Doctors[i].ID == d.ID {
			snap.Doctors[i] = d
			s.snap = snap
			return
		}
	}
	snap.Doctors = append(snap.Doctors, d)
	s.snap = snap
}

func (s *Store) ApplyProsthesisType(pt models.ProsthesisType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap.clone()
	for i := range snap.ProsthesisTypes {
		if snap.ProsthesisTypes[i].ID == pt.ID {
			snap.ProsthesisTypes[i] = pt
			s.snap = snap
			return
		}
	}
	snap.ProsthesisTypes = append(snap.ProsthesisTypes, pt)
	s.snap = snap
}

func (s *Store) ApplyTechnician(t models.Technician) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap.clone()
	for i := range snap.Technicians {
		if snap.Technicians[i].ID == t.ID {
			snap.Technicians[i] = t
			s.snap = snap
			return
		}
	}
	snap.Technicians = append(snap.Technicians, t)
	s.snap = snap
}

func (s *Store) ApplyOrder(o models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap.clone()
	upsertOrder(&snap.Orders, o)
	s.snap = snap
}

func (s *Store) ApplyPayment(p models.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap.clone()
	for i := range snap.Payments {
		if snap.Payments[i].ID == p.ID {
			snap.Payments[i] = p
			s.snap = snap
			return
		}
	}
	snap.Payments = append(snap.Payments, p)
	s.snap = snap
}

func (s *Store) ApplyExpense(e models.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap.clone()
	for i := range snap.Expenses {
		if snap.Expenses[i].ID == e.ID {
			snap.Expenses[i] = e
			s.snap = snap
			return
		}
	}
	snap.Expenses = append(snap.Expenses, e)
	s.snap = snap
}

func (s *Store) RemoveExpense(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap.clone()
	for i := range snap.Expenses {
		if snap.Expenses[i].ID == id {
			snap.Expenses = append(snap.Expenses[:i], snap.Expenses[i+1:]...)
			break
		}
	}
	s.snap = snap
}

func upsertOrder(orders *[]models.Order, o models.Order) {
	for i := range *orders {
		if (*orders)[i].ID == o.ID {
			(*orders)[i] = o
			return
		}
	}
	*orders = append(*orders, o)
}

// clone: okuyucular eski görüntüyü tutabilsin diye yazmadan önce sığ kopya
// alınır; koleksiyon dilimleri kopyalanır, kayıtlar değerle taşınır.
func (sn *Snapshot) clone() *Snapshot {
	cp := *sn
	cp.Clinics = append([]models.Clinic(nil), sn.Clinics...)
	cp.Doctors = append([]models.Doctor(nil), sn.Doctors...)
	cp.ProsthesisTypes = append([]models.ProsthesisType(nil), sn.ProsthesisTypes...)
	cp.Technicians = append([]models.Technician(nil), sn.Technicians...)
	cp.Orders = append([]models.Order(nil), sn.Orders...)
	cp.Payments = append([]models.Payment(nil), sn.Payments...)
	cp.Expenses = append([]models.Expense(nil), sn.Expenses...)
	cp.Users = append([]models.User(nil), sn.Users...)
	return &cp
}
