package flow

// Menu labels double as routing tokens: the reply keyboards echo the
// label back as message text, so handlers match on these exact strings.
const (
	tokenProductSection = "/mahsulot"
	tokenSellerSection  = "/sotuvchi"
	tokenBackToSellers  = "/sotuvchi_orqaga"
	tokenBackFromDetail = "/sotuvchi_orqaga_detal"

	tokenProductList = "Mahsulotlar"
	tokenProductNew  = "Yangi mahsulot kiritish"

	tokenSellersMenu     = "Sotuvchilar"
	tokenSellerNew       = "Yangi Sotuvchi Qo'shish"
	tokenSellersAll      = "Barcha Sotuvchilar"
	tokenSellerPasswords = "Sotuvchilar Parollari"

	tokenSellerDebt     = "Mahsulotlar va Qarzdorlik"
	tokenSellerIssue    = "Yangi Tovar Berish"
	tokenSellerPassword = "Sotuvchi Paroli"

	tokenMyProducts = "Mahsulotlarim"
	tokenMyDebt     = "Qarzdorligim"
)

// Unique identifier for product-pick inline buttons.
const callbackIssueProduct = "issue_prod"

const (
	textAdminGreeting  = "Assalomu alaykum, Admin! Asosiy boshqaruv buyruqlari:"
	textSellerGreeting = "Siz tizimga kirdingiz. O'zingizga kerakli bo'limni tanlang:"
	textAskPassword    = "Assalomu alaykum. Iltimos, profilingizga kirish uchun maxsus parolingizni kiriting:"
	textBadPassword    = "Kiritilgan parol noto'g'ri. Iltimos, qayta urinib ko'ring."
	textLoginOK        = "Muvaffaqiyatli kirdingiz, %s! Endi /start buyrug'ini bosing."

	textProductMenu     = "Mahsulotlar bo'limi:"
	textAskProductName  = "Iltimos, mahsulot nomini kiriting:"
	textAskProductPrice = "'%s' mahsuloti uchun narxni (son) kiriting:"
	textProductCreated  = "Mahsulot kiritildi: %s - %s so'm."
	textProductExists   = "Xatolik yuz berdi yoki '%s' allaqachon mavjud."
	textBadPrice        = "Narx noto'g'ri. Iltimos, faqat musbat son kiriting."
	textNoProducts      = "Bazada hech qanday mahsulot mavjud emas."
	textProductListHead = "📦 Barcha Mahsulotlar Ro'yxati:\n\n"

	textSellerSection    = "Sotuvchilar bo'limi:"
	textSellersListMenu  = "Sotuvchilar Ro'yxati Bo'limi:"
	textAskSellerName    = "Yangi sotuvchining ismini kiriting:"
	textAskSellerArea    = "Sotuvchining mahallasini kiriting:"
	textAskSellerPhone   = "Sotuvchining telefon nomerini kiriting:"
	textAskSellerPass    = "Sotuvchi uchun maxsus parol o'ylab toping va kiriting (Kirish uchun ishlatiladi):"
	textSellerCreated    = "Yangi sotuvchi %s muvaffaqiyatli qo'shildi! Paroli: %s"
	textSellerCreateFail = "Sotuvchi qo'shishda xatolik yuz berdi (Balki parol allaqachon mavjud)."
	textNoSellers        = "Bazada hozircha hech qanday sotuvchi mavjud emas."
	textNoSellerRows     = "Bazada sotuvchilar mavjud emas."
	textPickSeller       = "🧑‍🤝‍🧑 Sotuvchini tanlang:"
	textPasswordsHead    = "🔐 Sotuvchilar Parollari Ro'yxati:\n\n"
	textPasswordLine     = "👤 %s: %s\n"

	textDetailMenu      = "👤 %s uchun boshqaruv menyusi:"
	textPickSellerFirst = "Iltimos, avval ro'yxatdan sotuvchini tanlang."
	textSelectFirst     = "Avval sotuvchini tanlang."
	textPasswordReveal  = "👤 %s paroli: %s"
	textPasswordMissing = "Parol topilmadi yoki xatolik yuz berdi."

	textNoProductsToIssue = "Bazada mahsulotlar mavjud emas. Avval mahsulot kiriting."
	textPickProduct       = "➡️ %s uchun qaysi mahsulotni berasiz?"
	textAskQuantity       = "✅ Mahsulot tanlandi. Iltimos, necha dona berayotganingizni kiriting (faqat butun son):"
	textBadQuantity       = "Noto'g'ri qiymat. Iltimos, musbat butun son kiriting."
	textIssueOK           = "✅ Tovar muvaffaqiyatli berildi!\n\n👤 Sotuvchi: %s\n📦 Mahsulot: %s\n🔢 Soni: %d dona\n💵 Jami narx: %s so'm"
	textIssueFail         = "Xatolik yuz berdi: %s"
	textIssueNoProduct    = "Mahsulot topilmadi"
	textIssueStoreFail    = "Ma'lumotlar bazasiga yozib bo'lmadi"

	textAdminDebtHead   = "💰 %s uchun qarzdorlik hisoboti:\n\n💳 JAMI QARZDORLIK: %s so'm\n--------------------------------------\n"
	textIssuedListHead  = "📦 Berilgan Tovarlar Ro'yxati:\n\n"
	textNothingIssued   = "📦 Sotuvchiga hali hech qanday tovar berilmagan."
	textDebtItem        = "▪️ %s\n   Soni: %d dona\n   Narxi: %s so'm\n   Sana: %s\n"
	textReportContinues = "..."

	textMyDebtHead       = "💰 Sizning Qarzdorlik Hisobotingiz:\n\n💳 JAMI QARZDORLIK: %s so'm\n--------------------------------------\n"
	textReceivedListHead = "📦 Olingan Tovarlar Ro'yxati:\n\n"
	textNothingReceived  = "📦 Sizga hali hech qanday tovar berilmagan."

	textCatalogHead     = "📦 Mahsulotlarning Jami Ro'yxati:\n\n"
	textCatalogItem     = "%d. %s\n   Narxi: %s so'm\n"
	textCatalogEmpty    = "Bazada hozircha mahsulotlar mavjud emas. Adminga murojaat qiling."
	textProfileNotFound = "Tizimda sizning profilingiz topilmadi. Iltimos, /start orqali qayta urinib ko'ring."
)

const issuedAtLayout = "2006-01-02 15:04"
