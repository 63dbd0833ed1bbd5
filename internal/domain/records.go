package domain

import "time"

// SalesRecord is one unit-sale application row from the sales overview export.
// String fields are zero-valued when the source cell is empty; date fields are
// nil when absent or unparseable.
type SalesRecord struct {
	ID         int64      `db:"id" json:"-"`
	NoMesin    string     `db:"no_mesin" json:"no_mesin,omitempty"`
	NoRangka   string     `db:"no_rangka" json:"no_rangka,omitempty"`
	TglMohon   *time.Time `db:"tgl_mohon" json:"tgl_mohon,omitempty"`
	Nama       string     `db:"nama" json:"nama,omitempty"`
	DPAktual   float64    `db:"dp_aktual" json:"dp_aktual"`
	TipeATPM   string     `db:"tipe_atpm" json:"tipe_atpm,omitempty"`
	Warna      string     `db:"warna" json:"warna,omitempty"`
	DealerSO   string     `db:"dealer_so" json:"dealer_so,omitempty"`
	AreaDealer string     `db:"area_dealer" json:"area_dealer,omitempty"`
	Fincoy     string     `db:"fincoy" json:"fincoy,omitempty"`
	Konsumen   string     `db:"konsumen" json:"konsumen,omitempty"`
	Pekerjaan  string     `db:"pekerjaan" json:"pekerjaan,omitempty"`
	Gender     string     `db:"gender" json:"gender,omitempty"`
	TanggalSSU *time.Time `db:"tanggal_ssu" json:"tanggal_ssu,omitempty"`
	GrupDealer string     `db:"grup_dealer" json:"grup_dealer,omitempty"`
}

// ApplicationDate is the record's primary date: application date, falling back
// to the SSU/registration date.
func (r *SalesRecord) ApplicationDate() *time.Time {
	if r.TglMohon != nil {
		return r.TglMohon
	}
	return r.TanggalSSU
}

// DealerName returns the dealer identity used for grouping.
func (r *SalesRecord) DealerName() string {
	return r.DealerSO
}

// TransactionRecord is one billed transaction row from the salespeople detail
// export.
type TransactionRecord struct {
	ID              int64      `db:"id" json:"-"`
	KodeDealer      string     `db:"kode_dealer" json:"kode_dealer,omitempty"`
	NamaDealer      string     `db:"nama_dealer" json:"nama_dealer,omitempty"`
	TanggalProspect *time.Time `db:"tanggal_prospect" json:"tanggal_prospect,omitempty"`
	TanggalSPK      *time.Time `db:"tanggal_spk" json:"tanggal_spk,omitempty"`
	TanggalBilling  *time.Time `db:"tanggal_billing" json:"tanggal_billing,omitempty"`
	NamaCustomer    string     `db:"nama_customer" json:"nama_customer,omitempty"`
	NamaSalesman    string     `db:"nama_salesman" json:"nama_salesman,omitempty"`
	StatusSalesman  string     `db:"status_salesman" json:"status_salesman,omitempty"`
	MetodePembelian string     `db:"metode_pembelian" json:"metode_pembelian,omitempty"`
	NamaFincoy      string     `db:"nama_fincoy" json:"nama_fincoy,omitempty"`
	Fincoy          string     `db:"fincoy" json:"fincoy,omitempty"`
	DP              float64    `db:"dp" json:"dp"`
	Tenor           float64    `db:"tenor" json:"tenor"`
	Angsuran        float64    `db:"angsuran" json:"angsuran"`
	TipeMotor       string     `db:"tipe_motor" json:"tipe_motor,omitempty"`
	HargaOFR        float64    `db:"harga_ofr" json:"harga_ofr"`
	DiskonTotal     float64    `db:"diskon_total" json:"diskon_total"`
	NetSales        float64    `db:"net_sales" json:"net_sales"`
	BebanDealer     float64    `db:"beban_dealer" json:"beban_dealer"`
	BebanMD         float64    `db:"beban_md" json:"beban_md"`
	BebanAHM        float64    `db:"beban_ahm" json:"beban_ahm"`
	BebanFincoy     float64    `db:"beban_fincoy" json:"beban_fincoy"`
	StatusDelivery  string     `db:"status_delivery" json:"status_delivery,omitempty"`
	StatusBPKB      string     `db:"status_bpkb" json:"status_bpkb,omitempty"`
	TglBSTK         *time.Time `db:"tgl_bstk" json:"tgl_bstk,omitempty"`
}

// DealerName returns the dealer display name, falling back to the dealer code.
func (r *TransactionRecord) DealerName() string {
	if r.NamaDealer != "" {
		return r.NamaDealer
	}
	return r.KodeDealer
}

// FincoyName returns the finance company, falling back to the short fincoy
// column carried by some exports.
func (r *TransactionRecord) FincoyName() string {
	if r.NamaFincoy != "" {
		return r.NamaFincoy
	}
	return r.Fincoy
}

// NetValue is the transaction's revenue figure: net sales when present,
// otherwise the list price.
func (r *TransactionRecord) NetValue() float64 {
	if r.NetSales != 0 {
		return r.NetSales
	}
	return r.HargaOFR
}

// Burden is the per-unit dealer burden, falling back to the total discount
// when the dealer burden column is not populated.
func (r *TransactionRecord) Burden() float64 {
	if r.BebanDealer != 0 {
		return r.BebanDealer
	}
	return r.DiskonTotal
}

// BillingDate is the transaction's primary date: billing date, falling back to
// the SPK date.
func (r *TransactionRecord) BillingDate() *time.Time {
	if r.TanggalBilling != nil {
		return r.TanggalBilling
	}
	return r.TanggalSPK
}

// ProspectRecord is one lead row from the prospect acquisition export.
type ProspectRecord struct {
	ID               int64      `db:"id" json:"-"`
	Region           string     `db:"region" json:"region,omitempty"`
	KodeDealer       string     `db:"kode_dealer" json:"kode_dealer,omitempty"`
	NamaDealer       string     `db:"nama_dealer" json:"nama_dealer,omitempty"`
	SalesmanName     string     `db:"salesman_name" json:"salesman_name,omitempty"`
	EmployeeStatus   string     `db:"employee_status" json:"employee_status,omitempty"`
	RegistrationDate *time.Time `db:"registration_date" json:"registration_date,omitempty"`
	Gender           string     `db:"gender" json:"gender,omitempty"`
	Occupation       string     `db:"occupation" json:"occupation,omitempty"`
	SourceProspect   string     `db:"source_prospect" json:"source_prospect,omitempty"`
	ProspectStatus   string     `db:"prospect_status" json:"prospect_status,omitempty"`
	Reason           string     `db:"reason" json:"reason,omitempty"`
	FollowUpDate     *time.Time `db:"follow_up_date" json:"follow_up_date,omitempty"`
	FollowUpStatus   string     `db:"follow_up_status" json:"follow_up_status,omitempty"`
}

// DealerName returns the dealer display name, falling back to the dealer code.
func (r *ProspectRecord) DealerName() string {
	if r.NamaDealer != "" {
		return r.NamaDealer
	}
	return r.KodeDealer
}

// Converted reports whether this lead reached a closed state.
func (r *ProspectRecord) Converted() bool {
	return IsConverted(r.ProspectStatus)
}

// DealerMaster maps a dealer identity to its group and region. Lookups match
// any of the three identity columns case-insensitively.
type DealerMaster struct {
	ID      int64  `db:"id" json:"-"`
	Name    string `db:"name" json:"name"`
	Code    string `db:"code" json:"code,omitempty"`
	AltCode string `db:"alt_code" json:"alt_code,omitempty"`
	Group   string `db:"dealer_group" json:"group,omitempty"`
	Region  string `db:"region" json:"region,omitempty"`
}
