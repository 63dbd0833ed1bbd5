package ingest

import (
	"fmt"
	"strings"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/analytics"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

// Dataset kinds accepted by the upload endpoint and the load command.
const (
	KindSales        = "sales"
	KindTransactions = "transactions"
	KindProspects    = "prospects"
	KindDealers      = "dealers"
)

// Kinds lists the accepted dataset kinds.
var Kinds = []string{KindSales, KindTransactions, KindProspects, KindDealers}

// ValidKind reports whether kind names a known dataset.
func ValidKind(kind string) bool {
	for _, k := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// KindFromFilename infers the dataset kind from an export's filename. Used
// by the Drive sync, where nobody picks a kind by hand.
func KindFromFilename(name string) (string, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "prospect"):
		return KindProspects, true
	case strings.Contains(lower, "salespeople"), strings.Contains(lower, "detail"):
		return KindTransactions, true
	case strings.Contains(lower, "master"), strings.Contains(lower, "mapping"):
		return KindDealers, true
	case strings.Contains(lower, "sales"), strings.Contains(lower, "overview"):
		return KindSales, true
	default:
		return "", false
	}
}

// The coercers map the exports' exact header names onto domain records. Every
// cell goes through the tolerant converters: a malformed number becomes 0 and
// a malformed date becomes nil, never an error, because a single bad cell must
// not reject a 40k-row export.

func CoerceSales(rows []Row) []domain.SalesRecord {
	records := make([]domain.SalesRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.SalesRecord{
			NoMesin:    row.Str("No Mesin"),
			NoRangka:   row.Str("No Rangka"),
			TglMohon:   analytics.ToDate(row.Str("Tgl Mohon")),
			Nama:       row.Str("Nama"),
			DPAktual:   analytics.ToNumber(row.Str("DP Aktual")),
			TipeATPM:   row.Str("Tipe ATPM"),
			Warna:      row.Str("Warna"),
			DealerSO:   row.Str("Dealer/SO"),
			AreaDealer: row.Str("Area Dealer"),
			Fincoy:     row.Str("Fincoy"),
			Konsumen:   row.Str("Konsumen"),
			Pekerjaan:  row.Str("Pekerjaan4", "Pekerjaan"),
			Gender:     row.Str("Gender5", "Gender"),
			TanggalSSU: analytics.ToDate(row.Str("Tanggal SSU")),
			GrupDealer: row.Str("Grup Dealer"),
		})
	}
	return records
}

func CoerceTransactions(rows []Row) []domain.TransactionRecord {
	records := make([]domain.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.TransactionRecord{
			KodeDealer:      row.Str("Kode Dealer"),
			NamaDealer:      row.Str("Nama Dealer"),
			TanggalProspect: analytics.ToDate(row.Str("Tanggal Prospect")),
			TanggalSPK:      analytics.ToDate(row.Str("Tanggal SPK")),
			TanggalBilling:  analytics.ToDate(row.Str("Tanggal Billing")),
			NamaCustomer:    row.Str("Nama Customer"),
			NamaSalesman:    row.Str("Nama Salesman"),
			StatusSalesman:  row.Str("Status Salesman"),
			MetodePembelian: row.Str("Metode Pembelian"),
			NamaFincoy:      row.Str("Nama Fincoy/Perusahaan MOP"),
			Fincoy:          row.Str("Fincoy"),
			DP:              analytics.ToNumber(row.Str("DP")),
			Tenor:           analytics.ToNumber(row.Str("Tenor")),
			Angsuran:        analytics.ToNumber(row.Str("Angsuran")),
			TipeMotor:       row.Str("Tipe Motor"),
			HargaOFR:        analytics.ToNumber(row.Str("Harga OFR")),
			DiskonTotal:     analytics.ToNumber(row.Str("Diskon Total")),
			NetSales:        analytics.ToNumber(row.Str("Net Sales")),
			BebanDealer:     analytics.ToNumber(row.Str("Beban Dealer")),
			BebanMD:         analytics.ToNumber(row.Str("Beban MD")),
			BebanAHM:        analytics.ToNumber(row.Str("Beban AHM")),
			BebanFincoy:     analytics.ToNumber(row.Str("Beban Fincoy")),
			StatusDelivery:  row.Str("Status Delivery"),
			StatusBPKB:      row.Str("Status BPKB"),
			TglBSTK:         analytics.ToDate(row.Str("Tgl BSTK", "Tanggal BSTK")),
		})
	}
	return records
}

func CoerceProspects(rows []Row) []domain.ProspectRecord {
	records := make([]domain.ProspectRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.ProspectRecord{
			Region:           row.Str("Region"),
			KodeDealer:       row.Str("Kode Dealer"),
			NamaDealer:       row.Str("Nama Dealer"),
			SalesmanName:     row.Str("Salesman Name"),
			EmployeeStatus:   row.Str("Employee Status"),
			RegistrationDate: analytics.ToDate(row.Str("RegistrationDate", "Registration Date")),
			Gender:           row.Str("Gender"),
			Occupation:       row.Str("Occupation"),
			SourceProspect:   row.Str("Source Prospect"),
			ProspectStatus:   row.Str("Prospect Status"),
			Reason:           row.Str("Reason"),
			FollowUpDate:     analytics.ToDate(row.Str("FollowUpDate", "FollowUp Date")),
			FollowUpStatus:   row.Str("FollowUp Status"),
		})
	}
	return records
}

// CoerceDealerMasters skips rows without a dealer name: name is the upsert
// key.
func CoerceDealerMasters(rows []Row) []domain.DealerMaster {
	masters := make([]domain.DealerMaster, 0, len(rows))
	for _, row := range rows {
		name := row.Str("Nama Dealer", "Dealer")
		if name == "" {
			continue
		}
		masters = append(masters, domain.DealerMaster{
			Name:    name,
			Code:    row.Str("Kode Dealer"),
			AltCode: row.Str("Kode Alternatif"),
			Group:   row.Str("Grup Dealer", "Grup"),
			Region:  row.Str("Region", "Area"),
		})
	}
	return masters
}

// Coerce dispatches a parsed sheet to the coercer for its dataset kind and
// reports how many records came out.
func Coerce(kind string, rows []Row) (any, int, error) {
	switch kind {
	case KindSales:
		records := CoerceSales(rows)
		return records, len(records), nil
	case KindTransactions:
		records := CoerceTransactions(rows)
		return records, len(records), nil
	case KindProspects:
		records := CoerceProspects(rows)
		return records, len(records), nil
	case KindDealers:
		masters := CoerceDealerMasters(rows)
		return masters, len(masters), nil
	default:
		return nil, 0, fmt.Errorf("unknown dataset kind: %s", kind)
	}
}
